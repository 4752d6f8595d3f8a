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

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NVIDIA/craftgrid/pkg/item"
)

// Resolver maps item names onto ids. *item.Registry implements it.
type Resolver interface {
	Resolve(name string) (item.ID, error)
}

// Parser turns definition text into recipes. It holds no state besides
// its resolver and is safe for concurrent use.
type Parser struct {
	items Resolver
}

// NewParser returns a parser resolving names through items. A nil
// resolver uses the default item catalog.
func NewParser(items Resolver) *Parser {
	if items == nil {
		items = item.Default()
	}
	return &Parser{items: items}
}

// Parse parses every line of text. source names the text in diagnostics.
func Parse(source, text string) (Recipes, []Diagnostic) {
	return NewParser(nil).ParseString(source, text)
}

// ParseReader reads all of in and parses it. A read failure yields no
// recipes and a single source diagnostic.
func (p *Parser) ParseReader(source string, in io.Reader) (Recipes, []Diagnostic) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, []Diagnostic{{
			Source:  source,
			Element: ElementSource,
			Reason:  fmt.Sprintf("cannot read recipe definitions: %v", err),
		}}
	}
	return p.ParseString(source, string(data))
}

// ParseString parses every line of text in order.
func (p *Parser) ParseString(source, text string) (Recipes, []Diagnostic) {
	var (
		recipes Recipes
		diags   []Diagnostic
	)

	for i, raw := range strings.Split(text, "\n") {
		line := raw
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r, element, err := p.parseLine(line)
		if err != nil {
			diags = append(diags, Diagnostic{
				Source:  source,
				Line:    i + 1,
				Element: element,
				Reason:  fmt.Sprintf("cannot parse %s, ignoring the recipe: %v", element, err),
			})
			continue
		}
		r.Line = i + 1
		recipes = append(recipes, r)
	}

	return recipes, diags
}

// parseLine parses one trimmed, comment-free line. On failure it returns
// the failing element.
func (p *Parser) parseLine(line string) (Recipe, string, error) {
	var r Recipe

	sides := strings.Split(line, "=")
	if len(sides) != 2 {
		return r, ElementLine, fmt.Errorf("a single '=' was expected, got %d", len(sides)-1)
	}

	resultSplit := strings.Split(sides[0], ",")
	if strings.TrimSpace(resultSplit[0]) == "" {
		return r, ElementResult, fmt.Errorf("result is empty")
	}
	result, err := p.parseItem(resultSplit[0])
	if err != nil {
		return r, ElementResult, err
	}
	if result.Type <= 0 {
		return r, ElementResult, fmt.Errorf("result %q is not a craftable item", strings.TrimSpace(resultSplit[0]))
	}
	result.Count = 1
	if len(resultSplit) > 1 {
		count, cerr := strconv.Atoi(strings.TrimSpace(resultSplit[1]))
		if cerr != nil || count < 1 {
			return r, ElementResultCount, fmt.Errorf("count %q is not a positive integer", strings.TrimSpace(resultSplit[1]))
		}
		result.Count = count
	}
	r.Result = result

	for i, spec := range strings.Split(sides[1], "|") {
		slots, serr := p.parseIngredient(spec)
		if serr != nil {
			return Recipe{}, ingredientElement(i + 1), serr
		}
		r.Slots = append(r.Slots, slots...)
	}

	r.Normalize()
	return r, "", nil
}

// parseItem parses "name[^damage]". The count is left at zero.
func (p *Parser) parseItem(spec string) (item.Item, error) {
	parts := strings.Split(spec, "^")
	id, err := p.items.Resolve(strings.TrimSpace(parts[0]))
	if err != nil {
		return item.Item{}, err
	}

	it := item.Item{Type: id}
	if len(parts) > 1 {
		raw := strings.TrimSpace(parts[1])
		damage, derr := strconv.Atoi(raw)
		if derr != nil {
			return item.Item{}, fmt.Errorf("damage %q is not an integer", raw)
		}
		it.Damage = damage
	}
	return it, nil
}

// parseIngredient parses "item, pos {, pos}" into one slot per position.
func (p *Parser) parseIngredient(spec string) ([]Slot, error) {
	parts := strings.Split(spec, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected an item and at least one position in %q", strings.TrimSpace(spec))
	}

	it, err := p.parseItem(parts[0])
	if err != nil {
		return nil, err
	}
	it.Count = 1

	slots := make([]Slot, 0, len(parts)-1)
	for _, pos := range parts[1:] {
		x, y, perr := parsePosition(pos)
		if perr != nil {
			return nil, perr
		}
		slots = append(slots, Slot{Item: it, X: x, Y: y})
	}
	return slots, nil
}

// parsePosition parses "*" or "axis:axis".
func parsePosition(token string) (int, int, error) {
	token = strings.TrimSpace(token)
	if token == "*" {
		return Wildcard, Wildcard, nil
	}

	coords := strings.Split(token, ":")
	if len(coords) != 2 {
		return 0, 0, fmt.Errorf("position %q is not \"column:row\" or \"*\"", token)
	}
	x, err := parseAxis(coords[0])
	if err != nil {
		return 0, 0, fmt.Errorf("position %q: %w", token, err)
	}
	y, err := parseAxis(coords[1])
	if err != nil {
		return 0, 0, fmt.Errorf("position %q: %w", token, err)
	}
	return x, y, nil
}

// parseAxis maps '1'..'3' to 0..2 and '*' to Wildcard. Only the first
// character of the trimmed token is significant.
func parseAxis(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, fmt.Errorf("empty axis")
	}
	c := token[0]
	switch {
	case c == '*':
		return Wildcard, nil
	case c >= '1' && c < '1'+MaxAxis:
		return int(c - '1'), nil
	default:
		return 0, fmt.Errorf("axis %q is not 1-%d or '*'", token, MaxAxis)
	}
}
