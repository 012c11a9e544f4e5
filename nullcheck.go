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

// Package nullcheck implements the nullability inference core of a
// path-sensitive symbolic execution system. The driving engine notifies the
// checker at specific program events (binds, calls, returns, explicit casts,
// dispatch results, liveness sweeps, implicit dereferences); the checker
// propagates inferred nullability through the per-path state and reports
// violations where a nullable or provably-null value flows into a context
// that requires non-null:
//
//   - a null pointer is assigned to, passed to, or returned from a context
//     declared nonnull;
//   - a nullable pointer is assigned to, passed to, or returned from a
//     context declared nonnull;
//   - a nullable pointer is dereferenced.
//
// Explicit casts are trusted and are the way to suppress false positives: a
// cast that disagrees with the tracked inference permanently contradicts it.
// A few framework-specific heuristics in package hook suppress further
// well-known false-positive patterns.
package nullcheck

import (
	"github.com/symflow/nullcheck/config"
	"github.com/symflow/nullcheck/diagnostic"
)

// A Checker applies the nullability update rules. It holds the immutable
// configuration and the diagnostic engine; all per-path data lives in the
// inference.State snapshots owned by the engine, so a single Checker serves
// any number of concurrently explored paths without synchronization.
type Checker struct {
	conf  config.Config
	diags *diagnostic.Engine
}

// New creates a checker with the given configuration. tracer may be nil;
// when present it augments proven-null diagnostics with the engine's
// null-value provenance.
func New(conf config.Config, tracer diagnostic.ValueTracer) *Checker {
	return &Checker{
		conf:  conf,
		diags: diagnostic.NewEngine(tracer),
	}
}

// Diagnostics returns the violations reported so far, sorted by position.
func (c *Checker) Diagnostics() []diagnostic.Diagnostic {
	return c.diags.Diagnostics()
}
