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

// Package symbolic declares the contracts between the nullability core and
// its collaborators: the path-sensitive exploration engine that produces
// values, locations and program points, the constraint solver that decides
// definite nullness, and the frontend type representation that carries
// source-level nullability qualifiers. The core never constructs any of
// these; it only observes them at program events.
package symbolic

import (
	"go/token"

	"github.com/symflow/nullcheck/annotation"
)

// A Location is an opaque, path-independent identity for a symbolic memory
// region tracked by the engine. The core never inspects its structure; it
// keys the inference state on Key, which the engine guarantees to be stable
// and injective per region for the lifetime of the analysis.
type Location interface {
	Key() uint64
	String() string
}

// ResolveMode selects how a value is resolved to a tracked location.
type ResolveMode uint8

const (
	// ResolveDirect resolves the value's own region.
	ResolveDirect ResolveMode = iota
	// ResolveOwner resolves the owning aggregate region when the value's
	// region is a nested field or element access, and the region itself
	// otherwise. Implicit-dereference diagnostics on composite members use
	// this mode.
	ResolveOwner
)

// A Type is the collaborator representation of a static source type.
// Implementations must return their nullability qualifier through
// annotation.Annotated; an engine with no type for an expression passes nil.
type Type interface {
	annotation.Annotated
	// Pointer reports whether the type is pointer-like.
	Pointer() bool
	// Reference reports whether the type is a reference, implying an
	// unconditional dereference when a value is bound to it at a call
	// boundary.
	Reference() bool
}

// A Value is an engine r-value or l-value observed at a program event.
type Value interface {
	// Defined reports whether the value is a definite-or-unknown value
	// rather than a constraint-only symbol. Rules ignore values that are
	// not defined.
	Defined() bool
	// Type returns the static type of the expression or symbol that
	// produced the value, or nil when the engine has none.
	Type() Type
	// Resolve resolves the value to a trackable location under the given
	// mode. The second result is false when the value does not denote a
	// symbolic region.
	Resolve(mode ResolveMode) (Location, bool)
}

// A Node is a program point: a statement or expression the engine can locate
// in the analyzed source. Node implementations must be comparable, since
// structural equality of state snapshots compares source nodes by identity.
type Node interface {
	Pos() token.Position
	String() string
}

// BinaryAssign is implemented by bind statements of the form "lhs = rhs".
// The bind rule attributes inferred nullability to the decisive operand when
// the statement exposes one.
type BinaryAssign interface {
	Node
	LHS() Node
	RHS() Node
}

// A Constraint is the solver's verdict on the concrete nullness of a value
// along the current path.
type Constraint int8

const (
	// Unknown means the path constraints do not pin the value either way.
	Unknown Constraint = iota
	// IsNull means the value is provably null on this path.
	IsNull
	// IsNotNull means the value is provably non-null on this path.
	IsNotNull
)

// A Solver decides definite-nullness facts under the constraints of the
// path currently being explored.
type Solver interface {
	Nullness(v Value) Constraint
}
