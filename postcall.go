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

import (
	"github.com/symflow/nullcheck/annotation"
	"github.com/symflow/nullcheck/hook"
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// OnPostCall captures the result of an ordinary call. Results of routines
// declared in known-misannotated headers are contradicted wholesale;
// otherwise a fresh result with a nullable-declared return type starts being
// tracked. Dispatch calls are handled by OnDispatchCallResult instead.
func (c *Checker) OnPostCall(call symbolic.Call, ctx inference.Context) {
	callee, ok := call.Callee()
	if !ok {
		return
	}
	retType := callee.Return()
	if retType == nil || !retType.Pointer() {
		return
	}
	ret := call.ReturnValue()
	if ret == nil {
		return
	}
	loc, ok := ret.Resolve(symbolic.ResolveDirect)
	if !ok {
		return
	}

	state := ctx.State()

	if hook.MisannotatedOrigin(callee) {
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: annotation.Contradicted}), "")
		return
	}

	if _, isTracked := state.Lookup(loc); !isTracked &&
		annotation.Of(retType) == annotation.Nullable {
		// No explicit source: the trail falls back to the program point of
		// the snapshot the inference first appears in.
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: annotation.Nullable}), "")
	}
}
