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

package hook

import (
	"path/filepath"
	"strings"

	"github.com/symflow/nullcheck/symbolic"
)

// Headers whose declarations carry systematically wrong nullability
// annotations, matched by file basename prefix. Results of calls declared
// there are forced to Contradicted wholesale.
var _misannotatedFilePrefixes = []string{"CG"}

// MisannotatedOrigin reports whether the routine is declared in a header
// known to be misannotated, in which case the post-call rule suppresses all
// future reporting on the call result.
func MisannotatedOrigin(r symbolic.Routine) bool {
	origin := r.OriginFile()
	if origin == "" {
		return false
	}
	base := filepath.Base(origin)
	for _, prefix := range _misannotatedFilePrefixes {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}
