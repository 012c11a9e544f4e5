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
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// An Event is one program event the engine notifies the checker about. The
// set is closed and known exhaustively; engines that prefer a single entry
// point dispatch through Handle, engines that prefer per-construct hooks
// call the On* methods directly.
type Event interface {
	isEvent()
}

// BindEvent fires when a value is stored into a typed location.
type BindEvent struct {
	Dst  symbolic.Value
	Val  symbolic.Value
	Stmt symbolic.Node
}

// PreCallEvent fires before an ordinary call, with the arguments evaluated.
type PreCallEvent struct {
	Call symbolic.Call
}

// PostCallEvent fires after an ordinary call returns.
type PostCallEvent struct {
	Call symbolic.Call
}

// ReturnEvent fires before an explicit return statement executes.
type ReturnEvent struct {
	Stmt symbolic.ReturnStmt
}

// CastEvent fires after an explicit cast expression is evaluated.
type CastEvent struct {
	Cast symbolic.CastExpr
}

// DispatchEvent fires after a dynamically dispatched call returns.
type DispatchEvent struct {
	Call symbolic.DispatchCall
}

// SweepEvent fires when the engine garbage-collects dead locations.
type SweepEvent struct {
	Live inference.LiveSet
}

// DerefEvent fires when the engine dereferences a value whose concrete
// nullness it could not resolve. The node is already terminal; the checker
// only decides whether to report. Direct distinguishes a plain dereference
// from one through an implicit reference binding.
type DerefEvent struct {
	Value  symbolic.Value
	Direct bool
	Node   inference.PathNode
}

func (BindEvent) isEvent()     {}
func (PreCallEvent) isEvent()  {}
func (PostCallEvent) isEvent() {}
func (ReturnEvent) isEvent()   {}
func (CastEvent) isEvent()     {}
func (DispatchEvent) isEvent() {}
func (SweepEvent) isEvent()    {}
func (DerefEvent) isEvent()    {}

// Handle dispatches ev to the matching update rule. ctx is ignored for
// DerefEvent, which carries its own terminal node.
func (c *Checker) Handle(ev Event, ctx inference.Context) {
	switch ev := ev.(type) {
	case BindEvent:
		c.OnBind(ev.Dst, ev.Val, ev.Stmt, ctx)
	case PreCallEvent:
		c.OnPreCall(ev.Call, ctx)
	case PostCallEvent:
		c.OnPostCall(ev.Call, ctx)
	case ReturnEvent:
		c.OnReturn(ev.Stmt, ctx)
	case CastEvent:
		c.OnExplicitCast(ev.Cast, ctx)
	case DispatchEvent:
		c.OnDispatchCallResult(ev.Call, ctx)
	case SweepEvent:
		c.OnLivenessSweep(ev.Live, ctx)
	case DerefEvent:
		c.OnImplicitDeref(ev)
	}
}
