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

// Package symtest provides a scripted in-memory implementation of the
// symbolic collaborator contracts, so that the update rules can be driven
// through hand-built program events in tests without a real exploration
// engine.
package symtest

import (
	"go/token"

	"github.com/symflow/nullcheck/annotation"
	"github.com/symflow/nullcheck/symbolic"
)

// Loc is a scripted tracked location.
type Loc struct {
	ID   uint64
	Name string
}

func (l *Loc) Key() uint64    { return l.ID }
func (l *Loc) String() string { return l.Name }

// Type is a scripted static type.
type Type struct {
	Ptr bool
	Ref bool
	Ann annotation.Nullability
}

func (t *Type) Annotation() annotation.Nullability { return t.Ann }
func (t *Type) Pointer() bool                      { return t.Ptr }
func (t *Type) Reference() bool                    { return t.Ref }

// PtrType returns a pointer type with the given annotation.
func PtrType(ann annotation.Nullability) *Type {
	return &Type{Ptr: true, Ann: ann}
}

// RefType returns a reference type with the given annotation.
func RefType(ann annotation.Nullability) *Type {
	return &Type{Ref: true, Ann: ann}
}

// Val is a scripted engine value. Nullness is what the scripted solver
// answers for it.
type Val struct {
	Typ      *Type
	L        *Loc
	Owner    *Loc
	Undef    bool
	Nullness symbolic.Constraint
}

func (v *Val) Defined() bool { return !v.Undef }

func (v *Val) Type() symbolic.Type {
	if v.Typ == nil {
		return nil
	}
	return v.Typ
}

func (v *Val) Resolve(mode symbolic.ResolveMode) (symbolic.Location, bool) {
	if mode == symbolic.ResolveOwner && v.Owner != nil {
		return v.Owner, true
	}
	if v.L == nil {
		return nil, false
	}
	return v.L, true
}

// Node is a scripted program point.
type Node struct {
	Name     string
	Position token.Position
}

func (n *Node) Pos() token.Position { return n.Position }
func (n *Node) String() string      { return n.Name }

// At returns a node named name at the given line of file test.c.
func At(name string, line int) *Node {
	return &Node{Name: name, Position: token.Position{Filename: "test.c", Line: line, Column: 1}}
}

// Assign is a scripted "lhs = rhs" bind statement.
type Assign struct {
	Node
	L, R *Node
}

func (a *Assign) LHS() symbolic.Node { return a.L }
func (a *Assign) RHS() symbolic.Node { return a.R }

// Param is a scripted formal parameter.
type Param struct {
	PName string
	Typ   *Type
	Pack  bool
}

func (p *Param) Name() string   { return p.PName }
func (p *Param) Variadic() bool { return p.Pack }

func (p *Param) Type() symbolic.Type {
	if p.Typ == nil {
		return nil
	}
	return p.Typ
}

// Routine is a scripted callable declaration.
type Routine struct {
	ParamList []*Param
	Ret       *Type
	Origin    string
}

func (r *Routine) Params() []symbolic.Param {
	out := make([]symbolic.Param, len(r.ParamList))
	for i, p := range r.ParamList {
		out[i] = p
	}
	return out
}

func (r *Routine) Return() symbolic.Type {
	if r.Ret == nil {
		return nil
	}
	return r.Ret
}

func (r *Routine) OriginFile() string { return r.Origin }

// Call is a scripted ordinary call.
type Call struct {
	Rt       *Routine
	Args     []*Val
	ArgNodes []*Node
	Ret      *Val
}

func (c *Call) Callee() (symbolic.Routine, bool) {
	if c.Rt == nil {
		return nil, false
	}
	return c.Rt, true
}

func (c *Call) NumArgs() int { return len(c.Args) }

func (c *Call) Arg(i int) symbolic.Value {
	if i >= len(c.Args) || c.Args[i] == nil {
		return nil
	}
	return c.Args[i]
}

func (c *Call) ArgExpr(i int) symbolic.Node {
	if i >= len(c.ArgNodes) || c.ArgNodes[i] == nil {
		return nil
	}
	return c.ArgNodes[i]
}

func (c *Call) ReturnValue() symbolic.Value {
	if c.Ret == nil {
		return nil
	}
	return c.Ret
}

// Dispatch is a scripted dynamically dispatched call.
type Dispatch struct {
	Call
	Self     bool
	Recv     *Val
	RecvNode *Node
	CallNode *Node
	IsClass  bool
	Target   string
	Member   string
	Property bool
}

func (d *Dispatch) SelfOrSuper() bool { return d.Self }

func (d *Dispatch) Receiver() symbolic.Value {
	if d.Recv == nil {
		return nil
	}
	return d.Recv
}

func (d *Dispatch) ReceiverExpr() symbolic.Node {
	if d.RecvNode == nil {
		return nil
	}
	return d.RecvNode
}

func (d *Dispatch) Expr() symbolic.Node {
	if d.CallNode == nil {
		return nil
	}
	return d.CallNode
}

func (d *Dispatch) Instance() bool       { return !d.IsClass }
func (d *Dispatch) TargetName() string   { return d.Target }
func (d *Dispatch) Method() string       { return d.Member }
func (d *Dispatch) PropertyAccess() bool { return d.Property }

// Return is a scripted explicit return statement.
type Return struct {
	Node
	Val *Val
}

func (r *Return) Result() (symbolic.Value, bool) {
	if r.Val == nil {
		return nil, false
	}
	return r.Val, true
}

// Cast is a scripted explicit cast expression.
type Cast struct {
	Node
	Src *Type
	Dst *Type
	V   *Val
}

func (c *Cast) SrcType() symbolic.Type {
	if c.Src == nil {
		return nil
	}
	return c.Src
}

func (c *Cast) DestType() symbolic.Type {
	if c.Dst == nil {
		return nil
	}
	return c.Dst
}

func (c *Cast) Value() symbolic.Value {
	if c.V == nil {
		return nil
	}
	return c.V
}
