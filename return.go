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

// OnReturn checks an explicit return statement against the enclosing
// routine's declared return nullability. Returning a proven null from a
// nonnull routine sinks the path; returning a tracked nullable is advisory,
// since control is already leaving the routine. Untracked results with a
// nullable-declared return type are seeded, which is what propagates the
// inference to the caller-side view when the engine inlines routines.
//
// TODO: a violated nonnull precondition upstream (a disallowed-null argument
// already consumed by this routine) should suppress the postcondition
// reports below; until the engine exposes that fact, the same flow can be
// reported twice.
func (c *Checker) OnReturn(stmt symbolic.ReturnStmt, ctx inference.Context) {
	ret, ok := stmt.Result()
	if !ok {
		return
	}
	retValType := ret.Type()
	if retValType == nil || !retValType.Pointer() {
		return
	}
	if !ret.Defined() {
		return
	}
	declType := ctx.EnclosingReturn()
	if declType == nil {
		return
	}

	state := ctx.State()
	nullness := ctx.Solver().Nullness(ret)
	declNullability := annotation.Of(declType)

	if nullness == symbolic.IsNull && declNullability == annotation.Nonnull {
		if c.conf.Checks.NullReturnedFromNonnull {
			n := ctx.Sink(state, config.CheckNullReturnedFromNonnull)
			c.diags.Report(diagnostic.NullReturnedToNonnull, n, nil, stmt)
		}
		return
	}

	loc, ok := ret.Resolve(symbolic.ResolveDirect)
	if !ok {
		return
	}

	if tracked, isTracked := state.Lookup(loc); isTracked {
		if nullness != symbolic.IsNotNull &&
			tracked.Value == annotation.Nullable &&
			declNullability == annotation.Nonnull &&
			c.conf.Checks.NullableReturnedFromNonnull {
			n := ctx.Transition(state, config.CheckNullableReturnedFromNonnull)
			c.diags.Report(diagnostic.NullableReturnedToNonnull, n, loc, nil)
		}
		return
	}

	if declNullability == annotation.Nullable {
		ctx.Transition(state.Infer(loc, inference.NullabilityState{
			Value:  declNullability,
			Source: stmt,
		}), "")
	}
}
