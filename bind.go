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
	"github.com/symflow/nullcheck/config"
	"github.com/symflow/nullcheck/diagnostic"
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// OnBind propagates nullability through stores and warns when a null or
// tracked-nullable value is bound to a location with a nonnull type. Both
// violations are advisory: a bad assignment is recoverable, so the path
// keeps being explored.
func (c *Checker) OnBind(dst, val symbolic.Value, stmt symbolic.Node, ctx inference.Context) {
	locType := dst.Type()
	if locType == nil || !locType.Pointer() {
		return
	}
	if val == nil || !val.Defined() {
		return
	}

	state := ctx.State()
	nullness := ctx.Solver().Nullness(val)
	valNullability := annotation.Of(val.Type())
	locNullability := annotation.Of(locType)

	if nullness == symbolic.IsNull &&
		valNullability != annotation.Nonnull &&
		locNullability == annotation.Nonnull {
		if c.conf.Checks.NullPassedToNonnull {
			n := ctx.Transition(state, config.CheckNullPassedToNonnull)
			c.diags.Report(diagnostic.NullAssignedToNonnull, n, nil, stmt)
		}
		return
	}
	// Intentionally missing case: null bound to a reference. The engine's
	// dereference event covers it.

	loc, ok := val.Resolve(symbolic.ResolveDirect)
	if !ok {
		return
	}

	if tracked, isTracked := state.Lookup(loc); isTracked {
		// Never overwrite: the entry either records a contradiction or a
		// prior, more precise reason.
		if nullness == symbolic.IsNotNull || tracked.Value != annotation.Nullable {
			return
		}
		if locNullability == annotation.Nonnull && c.conf.Checks.NullablePassedToNonnull {
			n := ctx.Transition(state, config.CheckNullablePassedToNonnull)
			c.diags.Report(diagnostic.NullableAssignedToNonnull, n, loc, nil)
		}
		return
	}

	// Untracked: seed from static annotations. The value's declared type is
	// trusted over the location's when both carry information, since it
	// reflects what was actually produced.
	if valNullability == annotation.Nullable {
		src := stmt
		if assign, ok := stmt.(symbolic.BinaryAssign); ok {
			src = assign.RHS()
		}
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: valNullability, Source: src}), "")
		return
	}
	if locNullability == annotation.Nullable {
		src := stmt
		if assign, ok := stmt.(symbolic.BinaryAssign); ok {
			src = assign.LHS()
		}
		ctx.Transition(state.Infer(loc, inference.NullabilityState{Value: locNullability, Source: src}), "")
	}
}
