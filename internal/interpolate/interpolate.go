// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package interpolate substitutes named placeholders in HTML templates
// with content-field values, optionally wrapping a value in an inline-styled
// span. It is pure string work: no I/O, no HTML escaping — injected values
// are trusted operator content by the system's trust model.
package interpolate

import (
	"sort"
	"strings"
	"unicode"
)

// Apply replaces every occurrence of the literal token {{key}} in tmpl with
// the value from content, for each key present in content. Matching is
// case-sensitive and global. When styles carries a non-empty style record
// for a key, the substituted value is wrapped in
// <span style="prop:value;...">value</span> with property names converted
// from camelCase to kebab-case.
//
// Tokens whose keys are absent from content are left untouched, so Apply is
// idempotent on templates with no matching placeholders.
func Apply(tmpl string, content map[string]string, styles map[string]map[string]string) string {
	if len(content) == 0 {
		return tmpl
	}

	result := tmpl
	for key, value := range content {
		replacement := value
		if style := styles[key]; len(style) > 0 {
			replacement = `<span style="` + styleAttr(style) + `">` + value + `</span>`
		}
		result = strings.ReplaceAll(result, "{{"+key+"}}", replacement)
	}
	return result
}

// styleAttr renders a style record as "prop:value;prop:value". Properties
// are emitted in sorted order so output is deterministic.
func styleAttr(style map[string]string) string {
	props := make([]string, 0, len(style))
	for prop := range style {
		props = append(props, prop)
	}
	sort.Strings(props)

	pairs := make([]string, 0, len(props))
	for _, prop := range props {
		pairs = append(pairs, kebabCase(prop)+":"+style[prop])
	}
	return strings.Join(pairs, ";")
}

// kebabCase converts a camelCase CSS property name to its kebab-case form,
// e.g. fontSize → font-size.
func kebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
