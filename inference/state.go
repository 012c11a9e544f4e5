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

// Package inference holds the per-path nullability inference state: an
// immutable mapping from tracked locations to their inferred nullability,
// one snapshot per node of the explored path. Sparsity invariant: only
// locations inferred Nullable or Contradicted are materialized; locations
// that are merely unspecified or nonnull never enter the map, which keeps
// snapshots small since no rule would report on them anyway.
package inference

import (
	"github.com/symflow/nullcheck/annotation"
	"github.com/symflow/nullcheck/symbolic"
	"github.com/symflow/nullcheck/util/immutablemap"
)

// A NullabilityState is the inferred nullability of one tracked location
// together with the program construct that established it. Source may be
// nil, in which case trail reconstruction falls back to the program point of
// the snapshot the inference first appears in.
type NullabilityState struct {
	Value  annotation.Nullability
	Source symbolic.Node
}

// Equal reports structural equality: both the value and the source node must
// match. Trail reconstruction detects transition points by inequality
// between consecutive snapshots, so a change of source alone is a change.
func (n NullabilityState) Equal(o NullabilityState) bool {
	return n.Value == o.Value && n.Source == o.Source
}

type entry struct {
	loc symbolic.Location
	ns  NullabilityState
}

// A State is one immutable snapshot of the inference mapping. All mutating
// operations return a new State sharing structure with the receiver, so the
// engine can branch a path or keep an arbitrarily long snapshot history
// without copying.
type State struct {
	m immutablemap.Map[uint64, entry]
}

// NewState returns an empty state for the root of a path.
func NewState() *State {
	return &State{m: immutablemap.New[uint64, entry]()}
}

// Lookup returns the tracked nullability of loc, if any.
func (s *State) Lookup(loc symbolic.Location) (NullabilityState, bool) {
	e, ok := s.m.Load(loc.Key())
	return e.ns, ok
}

// Infer returns a state in which loc is tracked with ns, overwriting any
// previous entry. Callers uphold the sparsity invariant: ns.Value is
// Nullable or Contradicted.
func (s *State) Infer(loc symbolic.Location, ns NullabilityState) *State {
	return &State{m: s.m.Store(loc.Key(), entry{loc: loc, ns: ns})}
}

// Forget returns a state in which loc is no longer tracked.
func (s *State) Forget(loc symbolic.Location) *State {
	return &State{m: s.m.Delete(loc.Key())}
}

// Len returns the number of tracked locations.
func (s *State) Len() int {
	return s.m.Len()
}

// OrderedRange calls f for every tracked location in stable (location key)
// order. If f returns false, the iteration stops.
func (s *State) OrderedRange(f func(loc symbolic.Location, ns NullabilityState) bool) {
	s.m.OrderedRange(func(_ uint64, e entry) bool {
		return f(e.loc, e.ns)
	})
}

// Sweep returns a state with every entry whose location is no longer live
// removed. When nothing is dead the receiver itself is returned, so callers
// can detect a no-op by pointer comparison.
func (s *State) Sweep(live LiveSet) *State {
	var dead []symbolic.Location
	s.OrderedRange(func(loc symbolic.Location, _ NullabilityState) bool {
		if !live.Live(loc) {
			dead = append(dead, loc)
		}
		return true
	})
	if len(dead) == 0 {
		return s
	}
	out := s
	for _, loc := range dead {
		out = out.Forget(loc)
	}
	return out
}
