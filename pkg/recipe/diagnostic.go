// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package recipe

import "fmt"

// Elements named by diagnostics.
const (
	ElementLine        = "line"
	ElementResult      = "result"
	ElementResultCount = "result count"
	ElementSource      = "source"
)

// Diagnostic describes one rejected definition line, or a source that
// could not be read (Line 0).
type Diagnostic struct {
	Source  string `json:"source" yaml:"source"`
	Line    int    `json:"line" yaml:"line"`
	Element string `json:"element" yaml:"element"`
	Reason  string `json:"reason" yaml:"reason"`
}

// String renders "<source>: line <n>: <reason>".
func (d Diagnostic) String() string {
	if d.Line <= 0 {
		return fmt.Sprintf("%s: %s", d.Source, d.Reason)
	}
	return fmt.Sprintf("%s: line %d: %s", d.Source, d.Line, d.Reason)
}

// ingredientElement names the n-th (1-based) ingredient of a line.
func ingredientElement(n int) string {
	return fmt.Sprintf("ingredient #%d", n)
}
