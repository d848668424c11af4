// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitestore

import (
	"encoding/json"

	"quickstor/internal/models"
)

// cloneSite deep-copies the aggregate so snapshots handed to callers never
// alias the store's internal state.
func cloneSite(s models.Site) models.Site {
	out := models.Site{
		Navbar: s.Navbar,
		Footer: s.Footer,
		Theme:  s.Theme,
	}
	out.Navbar.Links = append([]models.NavLink(nil), s.Navbar.Links...)
	out.Footer.Columns = cloneFooterColumns(s.Footer.Columns)
	out.Footer.LegalLinks = append([]string(nil), s.Footer.LegalLinks...)

	out.Pages = make([]models.Page, len(s.Pages))
	for i, p := range s.Pages {
		out.Pages[i] = clonePage(p)
	}
	out.SavedThemes = append([]models.Theme(nil), s.SavedThemes...)

	out.CustomSections = make([]models.CustomSection, len(s.CustomSections))
	for i, cs := range s.CustomSections {
		out.CustomSections[i] = cloneCustomSection(cs)
	}
	return out
}

func clonePage(p models.Page) models.Page {
	out := p
	out.Sections = cloneSections(p.Sections)
	return out
}

func cloneSections(sections []models.Section) []models.Section {
	out := make([]models.Section, len(sections))
	for i, s := range sections {
		out[i] = cloneSection(s)
	}
	return out
}

// cloneSection copies a section including any reference-typed payload
// internals (slices and maps), so mutating a clone cannot leak back.
func cloneSection(s models.Section) models.Section {
	out := s
	switch c := s.Content.(type) {
	case models.HeroContent:
		c.TrustIndicators = append([]models.TrustIndicator(nil), c.TrustIndicators...)
		if c.ServerStatus != nil {
			status := *c.ServerStatus
			c.ServerStatus = &status
		}
		out.Content = c
	case models.FeatureGridContent:
		c.Features = append([]models.Feature(nil), c.Features...)
		out.Content = c
	case models.ComparisonGraphContent:
		c.Data = append([]models.ComparisonEntry(nil), c.Data...)
		out.Content = c
	case models.CustomHTMLContent:
		c.Schema = append([]models.SchemaField(nil), c.Schema...)
		c.Content = cloneStringMap(c.Content)
		c.Styles = cloneStyleMap(c.Styles)
		out.Content = c
	case models.UnknownContent:
		c.Raw = append(json.RawMessage(nil), c.Raw...)
		out.Content = c
	}
	return out
}

func cloneCustomSection(cs models.CustomSection) models.CustomSection {
	out := cs
	out.Schema = append([]models.SchemaField(nil), cs.Schema...)
	out.DefaultContent = cloneStringMap(cs.DefaultContent)
	return out
}

func cloneFooterColumns(cols []models.FooterColumn) []models.FooterColumn {
	out := make([]models.FooterColumn, len(cols))
	for i, c := range cols {
		out[i] = c
		out[i].Links = append([]string(nil), c.Links...)
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStyleMap(m map[string]map[string]string) map[string]map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]string, len(m))
	for k, v := range m {
		out[k] = cloneStringMap(v)
	}
	return out
}
