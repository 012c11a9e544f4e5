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

package symtest

import (
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// Solver answers nullness queries from the value's scripted Nullness field.
type Solver struct{}

func (Solver) Nullness(v symbolic.Value) symbolic.Constraint {
	if sv, ok := v.(*Val); ok {
		return sv.Nullness
	}
	return symbolic.Unknown
}

// LiveSet marks exactly the locations whose keys it contains as live.
type LiveSet map[uint64]bool

func (s LiveSet) Live(loc symbolic.Location) bool { return s[loc.Key()] }

// PathNode is one recorded node of a scripted path.
type PathNode struct {
	state *inference.State
	pred  *PathNode
	point symbolic.Node
	// Tag is the check tag the rule passed when recording this node.
	Tag string
}

func (n *PathNode) State() *inference.State { return n.state }

func (n *PathNode) Pred() inference.PathNode {
	if n.pred == nil {
		return nil
	}
	return n.pred
}

func (n *PathNode) Point() symbolic.Node {
	if n.point == nil {
		return nil
	}
	return n.point
}

// Path is a scripted exploration context. Tests set the current program
// point with Visit before firing each event; every Transition or Sink the
// rule makes appends a node at that point.
type Path struct {
	Solv    symbolic.Solver
	Return  *Type
	Inlined bool
	Stopped bool

	cur   *PathNode
	point symbolic.Node
}

// NewPath returns a path rooted at an empty snapshot.
func NewPath() *Path {
	return &Path{
		Solv: Solver{},
		cur:  &PathNode{state: inference.NewState()},
	}
}

// Visit sets the program point attributed to subsequently recorded nodes.
func (p *Path) Visit(point symbolic.Node) *Path {
	p.point = point
	return p
}

func (p *Path) State() *inference.State { return p.cur.State() }

func (p *Path) Node() inference.PathNode { return p.cur }

// Cur returns the current node with its concrete type, for assertions.
func (p *Path) Cur() *PathNode { return p.cur }

func (p *Path) Solver() symbolic.Solver { return p.Solv }

func (p *Path) EnclosingReturn() symbolic.Type {
	if p.Return == nil {
		return nil
	}
	return p.Return
}

func (p *Path) WasInlined() bool { return p.Inlined }

func (p *Path) Transition(s *inference.State, tag string) inference.PathNode {
	n := &PathNode{state: s, pred: p.cur, point: p.point, Tag: tag}
	p.cur = n
	return n
}

func (p *Path) Sink(s *inference.State, tag string) inference.PathNode {
	n := p.Transition(s, tag)
	p.Stopped = true
	return n
}
