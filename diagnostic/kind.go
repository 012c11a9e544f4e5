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

package diagnostic

// A Kind identifies one of the seven nullability violations. Each kind has
// exactly one fixed message; there is no parameterization and no severity
// beyond the single warning class.
type Kind int

const (
	// NullAssignedToNonnull: a provably-null value is stored into a
	// nonnull-declared location. Advisory; the path continues.
	NullAssignedToNonnull Kind = iota
	// NullPassedToNonnull: a provably-null argument reaches a
	// nonnull-declared parameter. Fatal for the path.
	NullPassedToNonnull
	// NullReturnedToNonnull: a provably-null value is returned from a
	// routine with a nonnull return type. Fatal for the path.
	NullReturnedToNonnull
	// NullableAssignedToNonnull: a tracked-nullable value is stored into a
	// nonnull-declared location. Advisory.
	NullableAssignedToNonnull
	// NullableReturnedToNonnull: a tracked-nullable value is returned from
	// a routine with a nonnull return type. Advisory.
	NullableReturnedToNonnull
	// NullableDereferenced: a tracked-nullable value is dereferenced,
	// directly or through an implicit reference binding. Fatal.
	NullableDereferenced
	// NullablePassedToNonnull: a tracked-nullable argument reaches a
	// nonnull-declared parameter. Fatal for the path.
	NullablePassedToNonnull
)

// Indexed by Kind. Do not reorder.
var _messages = [...]string{
	"Null pointer is assigned to a pointer which has nonnull type",
	"Null pointer is passed to a parameter which is marked as nonnull",
	"Null pointer is returned from a function that has nonnull return type",
	"Nullable pointer is assigned to a pointer which has nonnull type",
	"Nullable pointer is returned from a function that has nonnull return type",
	"Nullable pointer is dereferenced",
	"Nullable pointer is passed to a parameter which is marked as nonnull",
}

var _names = [...]string{
	"NullAssignedToNonnull",
	"NullPassedToNonnull",
	"NullReturnedToNonnull",
	"NullableAssignedToNonnull",
	"NullableReturnedToNonnull",
	"NullableDereferenced",
	"NullablePassedToNonnull",
}

// Message returns the fixed, human-readable message for the kind.
func (k Kind) Message() string {
	return _messages[k]
}

func (k Kind) String() string {
	return _names[k]
}

// NullValue reports whether the kind stems from a proven-null constraint
// rather than a mere annotation mismatch. For these kinds the reporter also
// requests the collaborator's null-value trail, tracing how the concrete
// null itself was produced.
func (k Kind) NullValue() bool {
	switch k {
	case NullAssignedToNonnull, NullPassedToNonnull, NullReturnedToNonnull:
		return true
	}
	return false
}
