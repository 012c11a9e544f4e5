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

// Package hook encodes the domain-specific suppression heuristics: a small,
// ordered table of well-known framework patterns whose results must never be
// reported on, because the dynamic invariants they rely on (an item is
// present in a collection, a lossless text encoding is in use) are invisible
// to any static analysis. A match forces the tracked result to Contradicted,
// which is absorbing, so the suppression is permanent for that location.
// This is policy, not architecture: extend the table, do not re-derive it.
package hook

import (
	"regexp"

	"github.com/symflow/nullcheck/symbolic"
)

// A dispatchSuppression is one row of the suppression table. A row matches
// when the receiver's declared type name matches target, the invoked member
// matches method (nil matches any member), the instance requirement holds,
// and, when paramName is set, some formal parameter carries that name.
type dispatchSuppression struct {
	target       *regexp.Regexp
	method       *regexp.Regexp
	instanceOnly bool
	paramName    string
}

// The table is ordered; the first matching row wins. All rows cover
// NS-prefixed framework types.
var _dispatchSuppressions = []dispatchSuppression{
	// Every item-retrieval member of a dictionary type relies on the item
	// being present, an invariant no static tool can see. The remaining
	// dictionary instance members are not interesting nullability-wise, so
	// the whole instance surface is ignored.
	{
		target:       regexp.MustCompile(`^NS\w*Dictionary`),
		instanceOnly: true,
	},
	// First/last element accessors of array types, for the same reason.
	{
		target: regexp.MustCompile(`^NS\w*Array`),
		method: regexp.MustCompile(`^(firstObject|lastObject)$`),
	},
	// Encoding-parameterized members of string types do not fail under
	// lossless encodings, which is the overwhelmingly common case.
	{
		target:    regexp.MustCompile(`^NS\w*String`),
		paramName: "encoding",
	},
}

// SuppressDispatch reports whether the result of the dispatch call is a
// known false-positive source whose tracked nullability must be forced to
// Contradicted regardless of its static return annotation.
func SuppressDispatch(call symbolic.DispatchCall) bool {
	name := call.TargetName()
	if name == "" {
		return false
	}
	for _, s := range _dispatchSuppressions {
		if !s.target.MatchString(name) {
			continue
		}
		if s.instanceOnly && !call.Instance() {
			continue
		}
		if s.method != nil && !s.method.MatchString(call.Method()) {
			continue
		}
		if s.paramName != "" && !hasParamNamed(call, s.paramName) {
			continue
		}
		return true
	}
	return false
}

func hasParamNamed(call symbolic.Call, name string) bool {
	callee, ok := call.Callee()
	if !ok {
		return false
	}
	for _, p := range callee.Params() {
		if p.Name() == name {
			return true
		}
	}
	return false
}
