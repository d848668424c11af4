// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitestore owns the working draft of the site aggregate and
// exposes the atomic, invariant-preserving mutations the editor drives.
// Mutators are synchronous and purely in-memory; persistence is the publish
// package's job, invoked explicitly by callers.
package sitestore

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"quickstor/internal/models"
)

// ErrSlugTaken is returned when a page create/update would duplicate
// another page's slug, which makes routing ambiguous.
var ErrSlugTaken = errors.New("sitestore: slug already in use by another page")

// Store holds the working draft and the editor cursors (active page,
// selected section). All methods are safe for concurrent use; each runs to
// completion under the store lock.
type Store struct {
	mu                sync.Mutex
	site              models.Site
	activePageID      string
	selectedSectionID string
}

// New creates a store over the given aggregate. The active page starts at
// home, or the first page when no home page exists.
func New(site models.Site) *Store {
	s := &Store{site: site}
	s.activePageID = s.resolveActive(models.HomePageID)
	return s
}

// resolveActive returns id if it names an existing page, otherwise home,
// otherwise the first page. Callers must hold mu (or be in New).
func (s *Store) resolveActive(id string) string {
	if s.site.FindPage(id) != nil {
		return id
	}
	if s.site.FindPage(models.HomePageID) != nil {
		return models.HomePageID
	}
	if len(s.site.Pages) > 0 {
		return s.site.Pages[0].ID
	}
	return ""
}

// Snapshot returns a deep copy of the working draft.
func (s *Store) Snapshot() models.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSite(s.site)
}

// ReplaceAll overwrites the working draft wholesale. Used when a remote
// snapshot arrives or on discard — last network write wins, no merge. The
// active page resets to home.
func (s *Store) ReplaceAll(site models.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site = cloneSite(site)
	s.activePageID = s.resolveActive(models.HomePageID)
	s.selectedSectionID = ""
}

// ActivePageID returns the editor's page cursor.
func (s *Store) ActivePageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePageID
}

// SetActivePage moves the page cursor. An unknown id resolves to home.
func (s *Store) SetActivePage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePageID = s.resolveActive(id)
	s.selectedSectionID = ""
}

// SelectedSectionID returns the editor's section cursor ("" when unset).
func (s *Store) SelectedSectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSectionID
}

// SelectSection moves the section cursor.
func (s *Store) SelectSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSectionID = id
}

// ActivePage returns a copy of the page the cursor points at.
func (s *Store) ActivePage() (models.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.site.FindPage(s.activePageID)
	if p == nil {
		return models.Page{}, false
	}
	return clonePage(*p), true
}

// --- Pages ---

// AddPage creates a page with a fresh id and a normalized slug, appends it,
// makes it active, and clears the section selection. Duplicate slugs are
// rejected with ErrSlugTaken.
func (s *Store) AddPage(title, slug string) (models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := models.NormalizeSlug(slug)
	for i := range s.site.Pages {
		if s.site.Pages[i].Slug == normalized {
			return models.Page{}, ErrSlugTaken
		}
	}

	page := models.Page{
		ID:       "page-" + uuid.NewString(),
		Slug:     normalized,
		Title:    title,
		Sections: []models.Section{},
	}
	s.site.Pages = append(s.site.Pages, page)
	s.activePageID = page.ID
	s.selectedSectionID = ""
	return clonePage(page), nil
}

// DeletePage removes a page. Deleting home is a guarded no-op. If the
// removed page was active, the cursor falls back to home.
func (s *Store) DeletePage(id string) {
	if id == models.HomePageID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pages := s.site.Pages[:0]
	for _, p := range s.site.Pages {
		if p.ID != id {
			pages = append(pages, p)
		}
	}
	s.site.Pages = pages

	if s.activePageID == id {
		s.activePageID = s.resolveActive(models.HomePageID)
		s.selectedSectionID = ""
	}
}

// PagePatch is a partial page update. Nil fields keep their value.
type PagePatch struct {
	Title *string `json:"title,omitempty"`
	Slug  *string `json:"slug,omitempty"`
}

// UpdatePage shallow-merges the patch into the page. A slug change is
// normalized and checked for uniqueness against every other page.
func (s *Store) UpdatePage(id string, patch PagePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.site.FindPage(id)
	if page == nil {
		return nil
	}
	if patch.Slug != nil {
		normalized := models.NormalizeSlug(*patch.Slug)
		for i := range s.site.Pages {
			if s.site.Pages[i].ID != id && s.site.Pages[i].Slug == normalized {
				return ErrSlugTaken
			}
		}
		page.Slug = normalized
	}
	if patch.Title != nil {
		page.Title = *patch.Title
	}
	return nil
}

// --- Sections ---

// AddSection appends a new section to the active page and selects it.
// When content is nil the kind's safe default payload is used; otherwise
// the caller-supplied content (e.g. validated AI output) is used verbatim.
func (s *Store) AddSection(t models.SectionType, content models.SectionContent) models.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content == nil {
		content = models.DefaultSectionContent(t)
	}
	section := models.Section{
		ID:      models.NewSectionID(t),
		Type:    t,
		Content: content,
	}

	if page := s.site.FindPage(s.activePageID); page != nil {
		page.Sections = append(page.Sections, section)
	}
	s.selectedSectionID = section.ID
	return cloneSection(section)
}

// UpdateSection replaces the content of the matching section in the active
// page wholesale. Callers merge any fields they want to preserve.
func (s *Store) UpdateSection(id string, content models.SectionContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.site.FindPage(s.activePageID)
	if page == nil {
		return
	}
	for i := range page.Sections {
		if page.Sections[i].ID == id {
			page.Sections[i].Content = content
			return
		}
	}
}

// ReorderSections replaces the active page's section list with the given
// permutation. By caller contract the list holds the same sections in a
// new order; no permutation check is performed.
func (s *Store) ReorderSections(order []models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page := s.site.FindPage(s.activePageID); page != nil {
		page.Sections = cloneSections(order)
	}
}

// DeleteSection removes the section from the active page and clears the
// selection if it pointed at the removed section.
func (s *Store) DeleteSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.site.FindPage(s.activePageID)
	if page == nil {
		return
	}
	sections := page.Sections[:0]
	for _, sec := range page.Sections {
		if sec.ID != id {
			sections = append(sections, sec)
		}
	}
	page.Sections = sections

	if s.selectedSectionID == id {
		s.selectedSectionID = ""
	}
}

// --- Navbar / footer ---

// NavbarPatch is a partial navbar update.
type NavbarPatch struct {
	Logo    *string           `json:"logo,omitempty"`
	Links   *[]models.NavLink `json:"links,omitempty"`
	CtaText *string           `json:"ctaText,omitempty"`
}

// UpdateNavbar shallow-merges the patch into the global navbar record.
func (s *Store) UpdateNavbar(patch NavbarPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Logo != nil {
		s.site.Navbar.Logo = *patch.Logo
	}
	if patch.Links != nil {
		s.site.Navbar.Links = append([]models.NavLink(nil), (*patch.Links)...)
	}
	if patch.CtaText != nil {
		s.site.Navbar.CtaText = *patch.CtaText
	}
}

// FooterPatch is a partial footer update.
type FooterPatch struct {
	BrandName        *string                `json:"brandName,omitempty"`
	BrandDescription *string                `json:"brandDescription,omitempty"`
	Tagline          *string                `json:"tagline,omitempty"`
	Columns          *[]models.FooterColumn `json:"columns,omitempty"`
	Copyright        *string                `json:"copyright,omitempty"`
	LegalLinks       *[]string              `json:"legalLinks,omitempty"`
}

// UpdateFooter shallow-merges the patch into the global footer record.
func (s *Store) UpdateFooter(patch FooterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.BrandName != nil {
		s.site.Footer.BrandName = *patch.BrandName
	}
	if patch.BrandDescription != nil {
		s.site.Footer.BrandDescription = *patch.BrandDescription
	}
	if patch.Tagline != nil {
		s.site.Footer.Tagline = *patch.Tagline
	}
	if patch.Columns != nil {
		s.site.Footer.Columns = cloneFooterColumns(*patch.Columns)
	}
	if patch.Copyright != nil {
		s.site.Footer.Copyright = *patch.Copyright
	}
	if patch.LegalLinks != nil {
		s.site.Footer.LegalLinks = append([]string(nil), (*patch.LegalLinks)...)
	}
}

// --- Themes ---

// UpdateTheme merges a partial update into the active theme, each top-level
// group independently.
func (s *Store) UpdateTheme(patch models.ThemePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site.Theme.Apply(patch)
}

// ApplyTheme replaces the active theme wholesale.
func (s *Store) ApplyTheme(theme models.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site.Theme = theme
}

// SaveThemeToLibrary clones the active theme under a fresh id and name and
// appends it to the saved-themes library.
func (s *Store) SaveThemeToLibrary(name string) models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.site.Theme
	saved.ID = "theme-" + uuid.NewString()
	saved.Name = name
	s.site.SavedThemes = append(s.site.SavedThemes, saved)
	return saved
}

// DeleteThemeFromLibrary removes a theme from the library. Deleting the
// default theme is a guarded no-op. If the deleted theme was active, the
// active theme reverts to the built-in default.
func (s *Store) DeleteThemeFromLibrary(id string) {
	if id == models.DefaultThemeID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	themes := s.site.SavedThemes[:0]
	for _, t := range s.site.SavedThemes {
		if t.ID != id {
			themes = append(themes, t)
		}
	}
	s.site.SavedThemes = themes

	if s.site.Theme.ID == id {
		s.site.Theme = models.DefaultTheme()
	}
}

// --- Custom section library ---

// AddCustomSection appends a reusable CUSTOM_HTML template to the library.
func (s *Store) AddCustomSection(cs models.CustomSection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site.CustomSections = append(s.site.CustomSections, cs)
}

// DeleteCustomSection removes a library entry by id.
func (s *Store) DeleteCustomSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.site.CustomSections[:0]
	for _, cs := range s.site.CustomSections {
		if cs.ID != id {
			kept = append(kept, cs)
		}
	}
	s.site.CustomSections = kept
}
