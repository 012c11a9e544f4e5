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

// Package annotation defines the four-valued nullability lattice shared by
// the inference state and the update rules.
package annotation

// Nullability is the inferred nullability of a tracked value.
//
// Do not reorder: MostNullable relies on the declared order. Contradicted is
// deliberately placed below Nullable so that once an explicit, trusted cast
// has contradicted earlier inference for a location, no later merge can
// promote the location back to Nullable, and nothing is ever reported on it
// again.
//
// Most values observed during exploration are expected to be unspecified or
// nonnull; only Nullable and Contradicted are ever materialized in the
// inference state.
type Nullability int8

const (
	// Contradicted marks a location whose tracked nullability was refuted by
	// an explicit cast or a known-misannotated origin. It is an absorbing
	// state: no rule reports on it or overwrites it.
	Contradicted Nullability = iota
	// Nullable marks a location that may hold null on the current path.
	Nullable
	// Unspecified is the nullability of a type without an annotation.
	Unspecified
	// Nonnull marks a location that is declared or proven to be non-null.
	Nonnull
)

// MostNullable returns the more nullable of the two operands, i.e. the
// minimum under the declared ordering. It is total, commutative and
// idempotent. Dispatch results use it to merge the nullability of the
// receiver with the nullability of the declared return: the result is as
// nullable as the more nullable of the two. Contradicted wins over
// everything, which is what keeps suppressions sticky.
func MostNullable(a, b Nullability) Nullability {
	if a < b {
		return a
	}
	return b
}

func (n Nullability) String() string {
	switch n {
	case Contradicted:
		return "contradicted"
	case Nullable:
		return "nullable"
	case Unspecified:
		return "unspecified"
	case Nonnull:
		return "nonnull"
	}
	return "invalid"
}

// Annotated is the slice of the collaborator type representation the lattice
// needs: a type that can report its source-level nullability qualifier.
type Annotated interface {
	// Annotation returns the static qualifier carried by the type, or
	// Unspecified when the type has none.
	Annotation() Nullability
}

// Of reads the static nullability annotation from a collaborator type. Types
// the engine has no representation for (nil) are Unspecified.
func Of(t Annotated) Nullability {
	if t == nil {
		return Unspecified
	}
	return t.Annotation()
}
