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

// Package diagnostic hosts the diagnostic engine: the update rules report
// violations into it, it reconstructs the causal trail for the implicated
// location from the path's snapshot history, and the host drains the
// collected diagnostics once exploration finishes. No aggregation or
// deduplication happens here; every violation occurrence on every explored
// path yields one diagnostic.
package diagnostic

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// A Step is one event of a causal trail: a program point and what was
// learned there.
type Step struct {
	Pos  token.Position
	Text string
}

func (s Step) String() string {
	posStr := "<no pos info>"
	if s.Pos.IsValid() {
		posStr = s.Pos.String()
	}
	return fmt.Sprintf("\t- %s: %s", posStr, s.Text)
}

// A Diagnostic is one reported violation with its causal trail.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Trail   []Step
}

// String renders the diagnostic as the fixed message followed by the trail,
// one step per line in program order.
func (d Diagnostic) String() string {
	if len(d.Trail) == 0 {
		return d.Message
	}
	parts := make([]string, 0, len(d.Trail)+1)
	parts = append(parts, d.Message)
	for _, s := range d.Trail {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}

// A ValueTracer is the collaborator that explains how a concrete null value
// was produced from the engine's constraint history. It is consulted only
// for the proven-null kinds; annotation-mismatch kinds carry enough context
// in the inference trail alone.
type ValueTracer interface {
	NullValueTrail(n inference.PathNode, expr symbolic.Node) []Step
}

// Engine collects the diagnostics raised during path exploration.
type Engine struct {
	tracer      ValueTracer
	diagnostics []Diagnostic
}

// NewEngine creates a diagnostic engine. tracer may be nil, in which case
// proven-null diagnostics carry only the inference trail.
func NewEngine(tracer ValueTracer) *Engine {
	return &Engine{tracer: tracer}
}

// Report records a violation detected at node n. loc, when non-nil, is the
// tracked location whose inferred nullability caused the violation; its
// causal trail is reconstructed from the snapshot history ending at n.
// valueExpr, when non-nil, is the offending source expression and positions
// the diagnostic; otherwise the node's own program point does.
func (e *Engine) Report(kind Kind, n inference.PathNode, loc symbolic.Location, valueExpr symbolic.Node) {
	d := Diagnostic{
		Kind:    kind,
		Message: kind.Message(),
	}
	if valueExpr != nil {
		d.Pos = valueExpr.Pos()
	} else if p := n.Point(); p != nil {
		d.Pos = p.Pos()
	}
	if loc != nil {
		d.Trail = reconstructTrail(loc, n)
	}
	if kind.NullValue() && valueExpr != nil && e.tracer != nil {
		d.Trail = append(d.Trail, e.tracer.NullValueTrail(n, valueExpr)...)
	}
	e.diagnostics = append(e.diagnostics, d)
}

// Diagnostics returns the collected diagnostics sorted by position.
func (e *Engine) Diagnostics() []Diagnostic {
	slices.SortStableFunc(e.diagnostics, func(a, b Diagnostic) int {
		if n := cmp.Compare(a.Pos.Filename, b.Pos.Filename); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Pos.Line, b.Pos.Line); n != 0 {
			return n
		}
		return cmp.Compare(a.Pos.Column, b.Pos.Column)
	})
	return e.diagnostics
}
