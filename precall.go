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

// OnPreCall checks each pointer- or reference-typed formal parameter
// against its actual argument before the call executes. Passing a
// disallowed null (or dereferencing a nullable through a reference binding)
// is a contract violation with no well-defined continuation, so those
// reports sink the path. Untracked arguments with a nullable static type
// are seeded into the state so later rules see them.
func (c *Checker) OnPreCall(call symbolic.Call, ctx inference.Context) {
	callee, ok := call.Callee()
	if !ok {
		return
	}

	state := ctx.State()
	orig := state

	for i, param := range callee.Params() {
		if param.Variadic() {
			break
		}
		if i >= call.NumArgs() {
			break
		}
		arg := call.Arg(i)
		if arg == nil || !arg.Defined() {
			continue
		}
		paramType := param.Type()
		if paramType == nil || (!paramType.Pointer() && !paramType.Reference()) {
			continue
		}

		nullness := ctx.Solver().Nullness(arg)
		paramNullability := annotation.Of(paramType)
		argStaticNullability := annotation.Of(arg.Type())

		if nullness == symbolic.IsNull &&
			argStaticNullability != annotation.Nonnull &&
			paramNullability == annotation.Nonnull {
			if c.conf.Checks.NullPassedToNonnull {
				n := ctx.Sink(state, config.CheckNullPassedToNonnull)
				c.diags.Report(diagnostic.NullPassedToNonnull, n, nil, call.ArgExpr(i))
				return
			}
			continue
		}

		loc, ok := arg.Resolve(symbolic.ResolveDirect)
		if !ok {
			continue
		}

		if tracked, isTracked := state.Lookup(loc); isTracked {
			if nullness == symbolic.IsNotNull || tracked.Value != annotation.Nullable {
				continue
			}
			if paramNullability == annotation.Nonnull {
				if c.conf.Checks.NullablePassedToNonnull {
					n := ctx.Sink(state, config.CheckNullablePassedToNonnull)
					c.diags.Report(diagnostic.NullablePassedToNonnull, n, loc, call.ArgExpr(i))
					return
				}
				continue
			}
			if paramType.Reference() && c.conf.Checks.NullableDereferenced {
				// Binding to a reference dereferences unconditionally at
				// the call boundary.
				n := ctx.Sink(state, config.CheckNullableDereferenced)
				c.diags.Report(diagnostic.NullableDereferenced, n, loc, call.ArgExpr(i))
				return
			}
			continue
		}

		// No tracked nullability yet; seed from the argument's static type.
		if argStaticNullability != annotation.Nullable {
			continue
		}
		state = state.Infer(loc, inference.NullabilityState{
			Value:  argStaticNullability,
			Source: call.ArgExpr(i),
		})
	}

	if state != orig {
		ctx.Transition(state, "")
	}
}
