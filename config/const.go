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

package config

// ConfigName is the file name looked up by Load, searched from the analyzed
// directory upward.
const ConfigName = "nullcheck.conf"

// Check names, used as tags on the path transitions that carry a report.
// They match the selector fields of ChecksConfig.
const (
	CheckNullPassedToNonnull         = "NullPassedToNonnull"
	CheckNullReturnedFromNonnull     = "NullReturnedFromNonnull"
	CheckNullableDereferenced        = "NullableDereferenced"
	CheckNullablePassedToNonnull     = "NullablePassedToNonnull"
	CheckNullableReturnedFromNonnull = "NullableReturnedFromNonnull"
)
