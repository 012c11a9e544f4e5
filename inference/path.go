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

package inference

import "github.com/symflow/nullcheck/symbolic"

// A PathNode is one node of the engine's explored path. Each node carries
// the state snapshot taken when it was created; trail reconstruction walks
// Pred links backward through the (possibly shared) path prefix.
type PathNode interface {
	State() *State
	// Pred returns the predecessor node, nil at the path root.
	Pred() PathNode
	// Point is the program point the node was created at, nil when the
	// engine has none for it.
	Point() symbolic.Node
}

// A LiveSet is the engine's view of which locations are still live at a
// garbage-collection notification.
type LiveSet interface {
	Live(loc symbolic.Location) bool
}

// A Context is handed to every update rule by the engine. It exposes the
// current snapshot and path node, the solver scoped to the path's
// constraints, and the two ways a rule extends the path: Transition records
// a new snapshot and keeps exploring, Sink records a terminal snapshot after
// which the engine must stop extending this path. Rules never block and
// never retry; each call is synchronous and total.
type Context interface {
	State() *State
	Node() PathNode
	Solver() symbolic.Solver
	// EnclosingReturn is the declared return type of the routine being
	// explored, nil when it has none.
	EnclosingReturn() symbolic.Type
	// WasInlined reports whether the result under inspection was produced
	// by a callee the engine actually inlined rather than modeled opaquely.
	WasInlined() bool
	// Transition appends a snapshot tagged with the check that produced it
	// ("" for plain propagation) and returns the new node.
	Transition(s *State, tag string) PathNode
	// Sink is Transition for fatal violations: the returned node is
	// terminal and the path is not explored further.
	Sink(s *State, tag string) PathNode
}
