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

package nullcheck_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/symflow/nullcheck"
	"github.com/symflow/nullcheck/annotation"
	"github.com/symflow/nullcheck/config"
	"github.com/symflow/nullcheck/diagnostic"
	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
	"github.com/symflow/nullcheck/symtest"
	"go.uber.org/goleak"
)

type CheckerSuite struct {
	suite.Suite

	checker *nullcheck.Checker
	path    *symtest.Path
}

func (s *CheckerSuite) SetupTest() {
	s.checker = nullcheck.New(config.Default(), nil)
	s.path = symtest.NewPath()
}

// seed makes loc tracked on the current path.
func (s *CheckerSuite) seed(loc *symtest.Loc, value annotation.Nullability, src symbolic.Node) {
	s.path.Transition(s.path.State().Infer(loc, inference.NullabilityState{Value: value, Source: src}), "")
}

func (s *CheckerSuite) tracked(loc *symtest.Loc) (inference.NullabilityState, bool) {
	return s.path.State().Lookup(loc)
}

func (s *CheckerSuite) TestNullAssignedToNonnull() {
	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), Nullness: symbolic.IsNull}

	s.path.Visit(symtest.At("p = nil", 2))
	s.checker.OnBind(dst, val, symtest.At("p = nil", 2), s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullAssignedToNonnull, diags[0].Kind)
	s.Require().Equal(2, diags[0].Pos.Line)
	// Advisory: the path keeps being explored.
	s.Require().False(s.path.Stopped)
	s.Require().Equal(config.CheckNullPassedToNonnull, s.path.Cur().Tag)
}

func (s *CheckerSuite) TestNullAssignedToNonnullDisabled() {
	conf := config.Default()
	conf.Checks.NullPassedToNonnull = false
	s.checker = nullcheck.New(conf, nil)

	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), Nullness: symbolic.IsNull}
	s.checker.OnBind(dst, val, symtest.At("p = nil", 2), s.path)

	s.Require().Empty(s.checker.Diagnostics())
	s.Require().False(s.path.Stopped)
}

func (s *CheckerSuite) TestBindSeedsFromValueType() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc}
	assign := &symtest.Assign{Node: *symtest.At("p = q", 3), L: symtest.At("p", 3), R: symtest.At("q", 3)}

	s.checker.OnBind(dst, val, assign, s.path)

	s.Require().Empty(s.checker.Diagnostics())
	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	// The value's declared type wins, so the inference is attributed to the
	// right-hand side.
	s.Require().Same(assign.R, ns.Source)
}

func (s *CheckerSuite) TestBindSeedsFromLocationType() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nullable)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc}
	assign := &symtest.Assign{Node: *symtest.At("p = q", 3), L: symtest.At("p", 3), R: symtest.At("q", 3)}

	s.checker.OnBind(dst, val, assign, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Same(assign.L, ns.Source)
}

func (s *CheckerSuite) TestNullableAssignedToNonnull() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc}
	s.path.Visit(symtest.At("p = q", 4))
	s.checker.OnBind(dst, val, symtest.At("p = q", 4), s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullableAssignedToNonnull, diags[0].Kind)
	s.Require().Len(diags[0].Trail, 1)
	s.Require().Equal(2, diags[0].Trail[0].Pos.Line)
	s.Require().False(s.path.Stopped)
}

func (s *CheckerSuite) TestBindProvenNotNullIsQuiet() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, nil)

	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc, Nullness: symbolic.IsNotNull}
	s.checker.OnBind(dst, val, symtest.At("p = q", 4), s.path)

	s.Require().Empty(s.checker.Diagnostics())
}

func (s *CheckerSuite) TestNullPassedToNonnull() {
	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "p", Typ: symtest.PtrType(annotation.Nonnull)},
		}},
		Args:     []*symtest.Val{{Typ: symtest.PtrType(annotation.Unspecified), Nullness: symbolic.IsNull}},
		ArgNodes: []*symtest.Node{symtest.At("nil", 5)},
	}
	s.checker.OnPreCall(call, s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullPassedToNonnull, diags[0].Kind)
	s.Require().Equal(5, diags[0].Pos.Line)
	// Fatal: the contract violation has no continuation.
	s.Require().True(s.path.Stopped)
}

func (s *CheckerSuite) TestPreCallDisabledStillSeeds() {
	conf := config.Default()
	conf.Checks.NullPassedToNonnull = false
	s.checker = nullcheck.New(conf, nil)

	loc := &symtest.Loc{ID: 2, Name: "q"}
	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "p", Typ: symtest.PtrType(annotation.Nonnull)},
			{PName: "q", Typ: symtest.PtrType(annotation.Unspecified)},
		}},
		Args: []*symtest.Val{
			{Typ: symtest.PtrType(annotation.Unspecified), Nullness: symbolic.IsNull},
			{Typ: symtest.PtrType(annotation.Nullable), L: loc},
		},
		ArgNodes: []*symtest.Node{symtest.At("nil", 5), symtest.At("q", 5)},
	}
	s.checker.OnPreCall(call, s.path)

	// The report is off but propagation is not: the nullable-typed second
	// argument is seeded and the path keeps going.
	s.Require().Empty(s.checker.Diagnostics())
	s.Require().False(s.path.Stopped)
	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
}

func (s *CheckerSuite) TestPreCallStopsAtVariadic() {
	loc := &symtest.Loc{ID: 2, Name: "q"}
	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "fmt", Typ: symtest.PtrType(annotation.Nonnull)},
			{PName: "args", Typ: symtest.PtrType(annotation.Nonnull), Pack: true},
		}},
		Args: []*symtest.Val{
			{Typ: symtest.PtrType(annotation.Nonnull)},
			{Typ: symtest.PtrType(annotation.Unspecified), L: loc, Nullness: symbolic.IsNull},
		},
		ArgNodes: []*symtest.Node{symtest.At("fmt", 5), symtest.At("nil", 5)},
	}
	s.checker.OnPreCall(call, s.path)

	s.Require().Empty(s.checker.Diagnostics())
	s.Require().False(s.path.Stopped)
}

func (s *CheckerSuite) TestNullablePassedToNonnull() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "p", Typ: symtest.PtrType(annotation.Nonnull)},
		}},
		Args:     []*symtest.Val{{Typ: symtest.PtrType(annotation.Unspecified), L: loc}},
		ArgNodes: []*symtest.Node{symtest.At("q", 6)},
	}
	s.checker.OnPreCall(call, s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullablePassedToNonnull, diags[0].Kind)
	s.Require().Len(diags[0].Trail, 1)
	s.Require().True(s.path.Stopped)
}

func (s *CheckerSuite) TestNullableBoundToReference() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "out", Typ: symtest.RefType(annotation.Unspecified)},
		}},
		Args:     []*symtest.Val{{Typ: symtest.PtrType(annotation.Unspecified), L: loc}},
		ArgNodes: []*symtest.Node{symtest.At("q", 6)},
	}
	s.checker.OnPreCall(call, s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullableDereferenced, diags[0].Kind)
	s.Require().True(s.path.Stopped)
}

func (s *CheckerSuite) TestPostCallTracksNullableReturn() {
	loc := &symtest.Loc{ID: 3, Name: "ret"}
	call := &symtest.Call{
		Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable), Origin: "Header.h"},
		Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc},
	}
	s.checker.OnPostCall(call, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Nil(ns.Source)
}

func (s *CheckerSuite) TestPostCallMisannotatedOrigin() {
	loc := &symtest.Loc{ID: 3, Name: "ret"}
	call := &symtest.Call{
		Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable), Origin: "CGColor.h"},
		Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc},
	}
	s.checker.OnPostCall(call, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Contradicted, ns.Value)
}

func (s *CheckerSuite) TestNullReturnedFromNonnull() {
	s.path.Return = symtest.PtrType(annotation.Nonnull)
	ret := &symtest.Return{
		Node: *symtest.At("return nil", 8),
		Val:  &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), Nullness: symbolic.IsNull},
	}
	s.checker.OnReturn(ret, s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullReturnedToNonnull, diags[0].Kind)
	s.Require().Equal(8, diags[0].Pos.Line)
	s.Require().True(s.path.Stopped)
}

func (s *CheckerSuite) TestNullableReturnedFromNonnull() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	s.path.Return = symtest.PtrType(annotation.Nonnull)
	ret := &symtest.Return{
		Node: *symtest.At("return q", 8),
		Val:  &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc},
	}
	s.path.Visit(&ret.Node)
	s.checker.OnReturn(ret, s.path)

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullableReturnedToNonnull, diags[0].Kind)
	s.Require().Len(diags[0].Trail, 1)
	s.Require().False(s.path.Stopped)
}

func (s *CheckerSuite) TestReturnSeedsNullableResult() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.path.Return = symtest.PtrType(annotation.Nullable)
	ret := &symtest.Return{
		Node: *symtest.At("return q", 8),
		Val:  &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc},
	}
	s.checker.OnReturn(ret, s.path)

	s.Require().Empty(s.checker.Diagnostics())
	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Same(ret, ns.Source)
}

func (s *CheckerSuite) TestCastContradictsTracked() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	cast := &symtest.Cast{
		Node: *symtest.At("(T * _Nonnull)q", 4),
		Src:  symtest.PtrType(annotation.Unspecified),
		Dst:  symtest.PtrType(annotation.Nonnull),
		V:    &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc},
	}
	s.checker.OnExplicitCast(cast, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Contradicted, ns.Value)

	// Contradicted is absorbing: the later dereference stays silent.
	s.checker.OnImplicitDeref(nullcheck.DerefEvent{
		Value:  &symtest.Val{Owner: loc},
		Direct: true,
		Node:   s.path.Cur(),
	})
	s.Require().Empty(s.checker.Diagnostics())
}

func (s *CheckerSuite) TestCastNullToNonnullContradicts() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	cast := &symtest.Cast{
		Node: *symtest.At("(T * _Nonnull)q", 4),
		Src:  symtest.PtrType(annotation.Unspecified),
		Dst:  symtest.PtrType(annotation.Nonnull),
		V:    &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc, Nullness: symbolic.IsNull},
	}
	s.checker.OnExplicitCast(cast, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Contradicted, ns.Value)
}

func (s *CheckerSuite) TestCastToNullableTracks() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	cast := &symtest.Cast{
		Node: *symtest.At("(T * _Nullable)q", 4),
		Src:  symtest.PtrType(annotation.Unspecified),
		Dst:  symtest.PtrType(annotation.Nullable),
		V:    &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: loc},
	}
	s.checker.OnExplicitCast(cast, s.path)

	ns, ok := s.tracked(loc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Same(cast, ns.Source)
}

func (s *CheckerSuite) TestCastToUnspecifiedIsNoop() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	cast := &symtest.Cast{
		Node: *symtest.At("(T *)q", 4),
		Src:  symtest.PtrType(annotation.Nullable),
		Dst:  symtest.PtrType(annotation.Unspecified),
		V:    &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc},
	}
	s.checker.OnExplicitCast(cast, s.path)

	_, ok := s.tracked(loc)
	s.Require().False(ok)
}

func (s *CheckerSuite) TestDispatchReceiverMerge() {
	recvLoc := &symtest.Loc{ID: 1, Name: "obj"}
	retLoc := &symtest.Loc{ID: 2, Name: "ret"}
	s.seed(recvLoc, annotation.Nullable, symtest.At("obj = f()", 2))

	call := &symtest.Dispatch{
		Call: symtest.Call{
			Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nonnull)},
			Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull), L: retLoc},
		},
		Recv:     &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified), L: recvLoc},
		RecvNode: symtest.At("obj", 4),
		CallNode: symtest.At("[obj name]", 4),
		Target:   "MyObject",
		Member:   "name",
	}
	s.checker.OnDispatchCallResult(call, s.path)

	// The result is as nullable as the receiver, and the inference points at
	// the receiver expression that made it so.
	ns, ok := s.tracked(retLoc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Same(call.RecvNode, ns.Source)
}

func (s *CheckerSuite) TestDispatchSuppression() {
	retLoc := &symtest.Loc{ID: 2, Name: "ret"}
	call := &symtest.Dispatch{
		Call: symtest.Call{
			Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable)},
			Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: retLoc},
		},
		Recv:     &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)},
		RecvNode: symtest.At("dict", 4),
		CallNode: symtest.At("[dict objectForKey:k]", 4),
		Target:   "NSDictionary",
		Member:   "objectForKey:",
	}
	s.checker.OnDispatchCallResult(call, s.path)

	ns, ok := s.tracked(retLoc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Contradicted, ns.Value)
}

func (s *CheckerSuite) TestDispatchSelfReceiver() {
	retLoc := &symtest.Loc{ID: 2, Name: "ret"}
	call := &symtest.Dispatch{
		Call: symtest.Call{
			Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable)},
			Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: retLoc},
		},
		Self:     true,
		CallNode: symtest.At("[self helper]", 4),
		Target:   "MyObject",
		Member:   "helper",
	}
	s.checker.OnDispatchCallResult(call, s.path)

	ns, ok := s.tracked(retLoc)
	s.Require().True(ok)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Same(call.CallNode, ns.Source)
}

func (s *CheckerSuite) TestDispatchPropertyNotInlined() {
	retLoc := &symtest.Loc{ID: 2, Name: "ret"}
	call := &symtest.Dispatch{
		Call: symtest.Call{
			Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable)},
			Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: retLoc},
		},
		Recv:     &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified)},
		RecvNode: symtest.At("obj", 4),
		CallNode: symtest.At("obj.name", 4),
		Target:   "MyObject",
		Member:   "name",
		Property: true,
	}
	// The engine modeled the property opaquely, so the nullable annotation on
	// the getter is not trusted.
	s.path.Inlined = false
	s.checker.OnDispatchCallResult(call, s.path)

	_, ok := s.tracked(retLoc)
	s.Require().False(ok)
}

func (s *CheckerSuite) TestImplicitDeref() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))
	s.path.Visit(symtest.At("*q", 6))
	s.path.Transition(s.path.State(), "")

	s.checker.OnImplicitDeref(nullcheck.DerefEvent{
		Value:  &symtest.Val{Owner: loc},
		Direct: true,
		Node:   s.path.Cur(),
	})

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullableDereferenced, diags[0].Kind)
	s.Require().Equal(6, diags[0].Pos.Line)
	s.Require().Len(diags[0].Trail, 1)
}

func (s *CheckerSuite) TestImplicitDerefThroughBinding() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, nil)

	s.checker.OnImplicitDeref(nullcheck.DerefEvent{
		Value:  &symtest.Val{Owner: loc},
		Direct: false,
		Node:   s.path.Cur(),
	})

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullablePassedToNonnull, diags[0].Kind)
}

func (s *CheckerSuite) TestLivenessSweep() {
	a := &symtest.Loc{ID: 1, Name: "a"}
	b := &symtest.Loc{ID: 2, Name: "b"}
	s.seed(a, annotation.Nullable, nil)
	s.seed(b, annotation.Nullable, nil)

	s.checker.OnLivenessSweep(symtest.LiveSet{1: true}, s.path)
	s.Require().Equal(1, s.path.State().Len())
	_, ok := s.tracked(a)
	s.Require().True(ok)

	// Nothing dead: no new snapshot is recorded.
	before := s.path.Cur()
	s.checker.OnLivenessSweep(symtest.LiveSet{1: true}, s.path)
	s.Require().Same(before, s.path.Cur())
}

func (s *CheckerSuite) TestNullAssignedSuppressedByValueAnnotation() {
	// The value's own static type says nonnull; the store is trusted even
	// though the solver proves null on this path.
	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull), Nullness: symbolic.IsNull}
	s.checker.OnBind(dst, val, symtest.At("p = q", 2), s.path)

	s.Require().Empty(s.checker.Diagnostics())
}

func (s *CheckerSuite) TestPreCallProvenNonNullIsQuiet() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	s.seed(loc, annotation.Nullable, symtest.At("q = f()", 2))

	call := &symtest.Call{
		Rt: &symtest.Routine{ParamList: []*symtest.Param{
			{PName: "p", Typ: symtest.PtrType(annotation.Nonnull)},
		}},
		Args:     []*symtest.Val{{Typ: symtest.PtrType(annotation.Unspecified), L: loc, Nullness: symbolic.IsNotNull}},
		ArgNodes: []*symtest.Node{symtest.At("q", 6)},
	}
	s.checker.OnPreCall(call, s.path)

	s.Require().Empty(s.checker.Diagnostics())
	s.Require().False(s.path.Stopped)
}

func (s *CheckerSuite) TestDispatchTrackedIsNotDowngraded() {
	recvLoc := &symtest.Loc{ID: 1, Name: "obj"}
	retLoc := &symtest.Loc{ID: 2, Name: "ret"}
	s.seed(retLoc, annotation.Nullable, symtest.At("ret = f()", 2))

	call := &symtest.Dispatch{
		Call: symtest.Call{
			Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nonnull)},
			Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull), L: retLoc},
		},
		Recv:     &symtest.Val{Typ: symtest.PtrType(annotation.Nonnull), L: recvLoc, Nullness: symbolic.IsNotNull},
		RecvNode: symtest.At("obj", 4),
		CallNode: symtest.At("[obj name]", 4),
		Target:   "MyObject",
		Member:   "name",
	}
	before := s.path.Cur()
	s.checker.OnDispatchCallResult(call, s.path)

	// A nonnull receiver never improves a tracked nullable result; nothing
	// changes and nothing is reported.
	s.Require().Same(before, s.path.Cur())
	ns, _ := s.tracked(retLoc)
	s.Require().Equal(annotation.Nullable, ns.Value)
	s.Require().Empty(s.checker.Diagnostics())
}

func (s *CheckerSuite) TestNullableReturnDereferenced() {
	// p = returnsNullable(); *p;
	loc := &symtest.Loc{ID: 1, Name: "p"}
	call := &symtest.Call{
		Rt:  &symtest.Routine{Ret: symtest.PtrType(annotation.Nullable)},
		Ret: &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc},
	}
	s.path.Visit(symtest.At("p = returnsNullable()", 2))
	s.checker.OnPostCall(call, s.path)

	s.path.Visit(symtest.At("*p", 3))
	s.path.Transition(s.path.State(), "")
	s.checker.OnImplicitDeref(nullcheck.DerefEvent{
		Value:  &symtest.Val{Owner: loc},
		Direct: true,
		Node:   s.path.Cur(),
	})

	diags := s.checker.Diagnostics()
	s.Require().Len(diags, 1)
	s.Require().Equal(diagnostic.NullableDereferenced, diags[0].Kind)
	s.Require().Equal(3, diags[0].Pos.Line)
	// The trail points back at the initializing call.
	s.Require().Len(diags[0].Trail, 1)
	s.Require().Equal(2, diags[0].Trail[0].Pos.Line)
}

func (s *CheckerSuite) TestHandleDispatchesEvents() {
	loc := &symtest.Loc{ID: 1, Name: "q"}
	dst := &symtest.Val{Typ: symtest.PtrType(annotation.Unspecified)}
	val := &symtest.Val{Typ: symtest.PtrType(annotation.Nullable), L: loc}

	s.checker.Handle(nullcheck.BindEvent{Dst: dst, Val: val, Stmt: symtest.At("p = q", 3)}, s.path)

	_, ok := s.tracked(loc)
	s.Require().True(ok)
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
