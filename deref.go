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
	"github.com/symflow/nullcheck/diagnostic"
	"github.com/symflow/nullcheck/symbolic"
)

// OnImplicitDeref handles the engine's implicit-dereference event, fired
// when a value with unresolved concrete nullness is dereferenced. The event
// node is already terminal; the rule only reports when the dereferenced
// location is tracked nullable. Resolution uses owner mode so that a
// dereference through a composite member is charged to the owning
// aggregate.
func (c *Checker) OnImplicitDeref(ev DerefEvent) {
	if ev.Value == nil {
		return
	}
	loc, ok := ev.Value.Resolve(symbolic.ResolveOwner)
	if !ok {
		return
	}

	tracked, isTracked := ev.Node.State().Lookup(loc)
	if !isTracked {
		return
	}

	if !c.conf.Checks.NullableDereferenced || tracked.Value != annotation.Nullable {
		return
	}
	if ev.Direct {
		c.diags.Report(diagnostic.NullableDereferenced, ev.Node, loc, nil)
	} else {
		c.diags.Report(diagnostic.NullablePassedToNonnull, ev.Node, loc, nil)
	}
}
