// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// HomePageID is the reserved identifier of the page that must always exist.
// It is non-deletable and the fallback target for unmatched paths.
const HomePageID = "home"

// Page is an ordered list of sections addressable by slug.
type Page struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// NormalizeSlug canonicalises a slug to have exactly one leading slash.
// An empty slug becomes "/".
func NormalizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = strings.Trim(slug, "/")
	return "/" + slug
}

// normalizePath reduces a request path to its comparable form: leading and
// trailing slashes stripped, empty meaning the site root.
func normalizePath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

// MatchesPath reports whether the page's slug matches the request path
// after normalization on both sides.
func (p *Page) MatchesPath(path string) bool {
	return normalizePath(p.Slug) == normalizePath(path)
}
