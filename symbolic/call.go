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

package symbolic

// A Param is one formal parameter of a callable declaration.
type Param interface {
	// Name is the declared parameter name, "" when anonymous.
	Name() string
	Type() Type
	// Variadic reports whether the parameter is a variadic pack; positional
	// argument pairing stops at the first such parameter.
	Variadic() bool
}

// A Routine is the declaration of a callable known to the engine.
type Routine interface {
	Params() []Param
	// Return is the declared return type, nil for procedures.
	Return() Type
	// OriginFile is the path of the file declaring the routine, "" when
	// unknown. The post-call rule consults it for the misannotated-origin
	// denylist.
	OriginFile() string
}

// A Call is an ordinary, statically dispatched call observed by the engine.
type Call interface {
	// Callee returns the called routine's declaration. The second result is
	// false for calls the engine could not resolve, which the rules skip.
	Callee() (Routine, bool)
	NumArgs() int
	// Arg returns the value the engine computed for the i-th actual
	// argument, or nil when the argument is not a definite-or-unknown
	// value.
	Arg(i int) Value
	// ArgExpr returns the source expression of the i-th actual argument,
	// or nil for implicit arguments.
	ArgExpr(i int) Node
	// ReturnValue is the fresh value the engine bound to the call result,
	// or nil when the call has none.
	ReturnValue() Value
}

// A DispatchCall is a dynamically dispatched, receiver-based call whose
// result nullability depends on both the receiver and the declared return.
type DispatchCall interface {
	Call
	// SelfOrSuper reports whether the receiver is the implicit self or
	// super receiver, which is always assumed nonnull.
	SelfOrSuper() bool
	// Receiver returns the receiver value; nil when SelfOrSuper reports
	// true or the engine has no value for it.
	Receiver() Value
	// ReceiverExpr is the source expression of the receiver, used to
	// attribute inferred nullability when the receiver side is decisive.
	ReceiverExpr() Node
	// Expr is the whole dispatch expression.
	Expr() Node
	// Instance reports whether the dispatch goes through an instance
	// rather than a type/class.
	Instance() bool
	// TargetName is the name of the receiver's declared interface or
	// class, "" when unknown. Consulted by the suppression table.
	TargetName() string
	// Method is the leading name of the invoked member.
	Method() string
	// PropertyAccess reports whether the dispatch is a property-style
	// access rather than an explicit call.
	PropertyAccess() bool
}

// A ReturnStmt is an explicit return statement in the analyzed routine.
type ReturnStmt interface {
	Node
	// Result returns the returned value; the second result is false for
	// bare returns.
	Result() (Value, bool)
}

// A CastExpr is an explicit cast observed by the engine. Explicit casts are
// the user's mechanism to suppress false positives, so the cast rule trusts
// them unconditionally.
type CastExpr interface {
	Node
	SrcType() Type
	DestType() Type
	// Value is the value of the cast expression itself.
	Value() Value
}
