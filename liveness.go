//  Copyright (c) 2025 the Symflow authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nullcheck

import "github.com/symflow/nullcheck/inference"

// OnLivenessSweep drops every tracked entry whose location the engine
// reports dead. Pure cleanup; never emits diagnostics. This is what bounds
// the map on long-lived paths.
func (c *Checker) OnLivenessSweep(live inference.LiveSet, ctx inference.Context) {
	state := ctx.State()
	if swept := state.Sweep(live); swept != state {
		ctx.Transition(swept, "")
	}
}
