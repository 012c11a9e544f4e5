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
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// OnExplicitCast trusts explicit casts as the user's suppression mechanism.
// A cast whose destination carries no annotation changes nothing. Casting a
// proven null to nonnull, or casting against the tracked inference,
// contradicts the location permanently; casting an untracked value to
// nullable starts tracking it.
func (c *Checker) OnExplicitCast(cast symbolic.CastExpr, ctx inference.Context) {
	src, dst := cast.SrcType(), cast.DestType()
	if src == nil || !src.Pointer() {
		return
	}
	if dst == nil || !dst.Pointer() {
		return
	}

	destNullability := annotation.Of(dst)
	if destNullability == annotation.Unspecified {
		return
	}

	val := cast.Value()
	if val == nil || !val.Defined() {
		return
	}
	loc, ok := val.Resolve(symbolic.ResolveDirect)
	if !ok {
		return
	}

	state := ctx.State()

	// Null asserted to be nonnull: the user knows better, never report on
	// this location again.
	if destNullability == annotation.Nonnull &&
		ctx.Solver().Nullness(val) == symbolic.IsNull {
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: annotation.Contradicted}), "")
		return
	}

	tracked, isTracked := state.Lookup(loc)
	if !isTracked {
		if destNullability != annotation.Nullable {
			return
		}
		ctx.Transition(state.Infer(loc, inference.NullabilityState{
			Value:  destNullability,
			Source: cast,
		}), "")
		return
	}

	if tracked.Value != destNullability && tracked.Value != annotation.Contradicted {
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: annotation.Contradicted}), "")
	}
}
