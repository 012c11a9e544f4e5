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

import (
	"fmt"

	"github.com/symflow/nullcheck/inference"
	"github.com/symflow/nullcheck/symbolic"
)

// reconstructTrail walks the snapshot history backward from n and emits one
// step at every node where the tracked state of loc differs structurally
// from its predecessor's. The step is placed at the stored source of the
// inference when one exists, and at the snapshot's own program point
// otherwise. The walk stops at the first snapshot that does not track loc;
// steps are returned oldest first.
func reconstructTrail(loc symbolic.Location, n inference.PathNode) []Step {
	var steps []Step
	for cur := n; cur != nil; cur = cur.Pred() {
		ns, ok := cur.State().Lookup(loc)
		if !ok {
			break
		}
		if pred := cur.Pred(); pred != nil {
			if prev, ok := pred.State().Lookup(loc); ok && prev.Equal(ns) {
				continue
			}
		}

		point := ns.Source
		if point == nil {
			point = cur.Point()
		}
		if point == nil {
			continue
		}
		steps = append(steps, Step{
			Pos:  point.Pos(),
			Text: fmt.Sprintf("Nullability '%v' is inferred", ns.Value),
		})
	}

	// The walk visits transition points newest first; present them in
	// program order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
