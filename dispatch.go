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

// receiverNullability resolves the nullability of a dispatch receiver. The
// implicit self/super receiver is always nonnull. Otherwise the tracked
// state decides, except that a receiver the solver proves non-null on this
// path is nonnull regardless of type-level information.
func receiverNullability(call symbolic.DispatchCall, state *inference.State, solver symbolic.Solver) annotation.Nullability {
	if call.SelfOrSuper() {
		return annotation.Nonnull
	}

	result := annotation.Unspecified
	recv := call.Receiver()
	if recv == nil {
		return result
	}
	if loc, ok := recv.Resolve(symbolic.ResolveDirect); ok {
		if tracked, isTracked := state.Lookup(loc); isTracked {
			result = tracked.Value
		}
	}
	if recv.Defined() && solver.Nullness(recv) == symbolic.IsNotNull {
		result = annotation.Nonnull
	}
	return result
}

// OnDispatchCallResult computes the nullability of a dynamically dispatched
// call result as the most nullable of the receiver and the declared return,
// after consulting the suppression table. It never reports; it only updates
// state that later rules may report on.
func (c *Checker) OnDispatchCallResult(call symbolic.DispatchCall, ctx inference.Context) {
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
	retLoc, ok := ret.Resolve(symbolic.ResolveDirect)
	if !ok {
		return
	}

	state := ctx.State()

	if hook.SuppressDispatch(call) {
		ctx.Transition(state.Infer(retLoc, inference.NullabilityState{Value: annotation.Contradicted}), "")
		return
	}

	recvNullability := receiverNullability(call, state, ctx.Solver())

	if tracked, isTracked := state.Lookup(retLoc); isTracked {
		// The expression is as nullable as the more nullable of receiver
		// and tracked return.
		computed := annotation.MostNullable(tracked.Value, recvNullability)
		if computed != tracked.Value && computed != annotation.Unspecified {
			// The receiver side was decisive; attribute the inference to it.
			ctx.Transition(state.Infer(retLoc, inference.NullabilityState{
				Value:  computed,
				Source: call.ReceiverExpr(),
			}), "")
		}
		return
	}

	// Nothing tracked; start from the declared return annotation.
	declared := annotation.Of(retType)

	// Property reads the engine did not inline produce a fresh symbol on
	// every access, so trusting a nullable annotation on them is pure noise.
	if call.PropertyAccess() && !ctx.WasInlined() {
		declared = annotation.Nonnull
	}

	computed := annotation.MostNullable(declared, recvNullability)
	if computed == annotation.Nullable {
		source := call.Expr()
		if computed != declared {
			source = call.ReceiverExpr()
		}
		ctx.Transition(state.Infer(retLoc, inference.NullabilityState{
			Value:  computed,
			Source: source,
		}), "")
	}
}
