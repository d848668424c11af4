// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SectionType tags the closed set of section kinds. Adding a kind means
// extending this set, DefaultSectionContent, and the renderer's switch.
type SectionType string

const (
	SectionHero            SectionType = "HERO"
	SectionFeatureGrid     SectionType = "FEATURE_GRID"
	SectionComparisonGraph SectionType = "COMPARISON_GRAPH"
	SectionCustomHTML      SectionType = "CUSTOM_HTML"
)

// KnownSectionType reports whether t is one of the editable section kinds.
// Stored documents may still carry other tags (written by a newer editor);
// this gate is for input boundaries that create sections.
func KnownSectionType(t SectionType) bool {
	switch t {
	case SectionHero, SectionFeatureGrid, SectionComparisonGraph, SectionCustomHTML:
		return true
	}
	return false
}

// SectionContent is the sum type over per-kind content payloads. It is a
// sealed interface: only the types in this package implement it.
type SectionContent interface {
	sectionContent()
}

// HeroTitle splits the hero headline into a plain line and an accented part.
type HeroTitle struct {
	Line1     string `json:"line1"`
	Highlight string `json:"highlight"`
}

// TrustIndicator is a small icon+text badge shown under the hero CTAs.
type TrustIndicator struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// ServerStatus is the decorative status readout in the hero illustration.
type ServerStatus struct {
	Status string `json:"status"`
	Scrub  string `json:"scrub"`
	Dedup  string `json:"dedup"`
}

// HeroContent is the payload of a HERO section.
type HeroContent struct {
	Badge           string           `json:"badge"`
	Title           HeroTitle        `json:"title"`
	Subtitle        string           `json:"subtitle"`
	PrimaryCta      string           `json:"primaryCta"`
	SecondaryCta    string           `json:"secondaryCta"`
	TrustIndicators []TrustIndicator `json:"trustIndicators,omitempty"`
	ServerStatus    *ServerStatus    `json:"serverStatus,omitempty"`
}

func (HeroContent) sectionContent() {}

// Feature is one cell of a FEATURE_GRID section.
type Feature struct {
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// FeatureGridContent is the payload of a FEATURE_GRID section.
type FeatureGridContent struct {
	Features []Feature `json:"features" validate:"min=1,dive"`
}

func (FeatureGridContent) sectionContent() {}

// ComparisonEntry is one bar group of a COMPARISON_GRAPH section.
type ComparisonEntry struct {
	Name       string  `json:"name" validate:"required"`
	IOPS       float64 `json:"iops"`
	Throughput float64 `json:"throughput"`
}

// ComparisonGraphContent is the payload of a COMPARISON_GRAPH section.
type ComparisonGraphContent struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Data        []ComparisonEntry `json:"data" validate:"min=1,dive"`
}

func (ComparisonGraphContent) sectionContent() {}

// SchemaField describes one editable placeholder of a custom HTML section.
type SchemaField struct {
	Key         string `json:"key" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// CustomHTMLContent is the payload of a CUSTOM_HTML section. HTML contains
// {{key}} placeholders resolved against Content; Styles optionally wraps a
// substituted value in an inline-styled span, keyed by field then CSS
// property (camelCase).
type CustomHTMLContent struct {
	HTML    string                       `json:"html" validate:"required"`
	CSS     string                       `json:"css,omitempty"`
	Schema  []SchemaField                `json:"schema,omitempty" validate:"dive"`
	Content map[string]string            `json:"content,omitempty"`
	Styles  map[string]map[string]string `json:"styles,omitempty"`
}

func (CustomHTMLContent) sectionContent() {}

// UnknownContent preserves the payload of a section whose type tag is not
// recognised. It keeps round-trips lossless and lets the renderer show a
// diagnostic instead of dropping or crashing on the entry.
type UnknownContent struct {
	Raw json.RawMessage `json:"-"`
}

func (UnknownContent) sectionContent() {}

// Section is a typed, independently editable block of page content.
type Section struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Content SectionContent `json:"content"`
}

// NewSectionID generates a unique section identifier. The lowercase type
// prefix keeps IDs readable in the editor; the UUID suffix makes collisions
// impossible regardless of clock resolution.
func NewSectionID(t SectionType) string {
	return strings.ToLower(string(t)) + "-" + uuid.NewString()
}

// DefaultSectionContent returns the safe default payload for a section
// kind, so a freshly added section never crashes the preview.
func DefaultSectionContent(t SectionType) SectionContent {
	switch t {
	case SectionHero:
		return HeroContent{
			Badge:        "NEW",
			Title:        HeroTitle{Line1: "Brand New", Highlight: "Section"},
			Subtitle:     "This is a new hero section.",
			PrimaryCta:   "Action",
			SecondaryCta: "Learn More",
		}
	case SectionFeatureGrid:
		return FeatureGridContent{
			Features: []Feature{
				{Icon: "Shield", Title: "New Feature 1", Description: "Description here."},
				{Icon: "Zap", Title: "New Feature 2", Description: "Description here."},
				{Icon: "Cpu", Title: "New Feature 3", Description: "Description here."},
			},
		}
	case SectionComparisonGraph:
		return ComparisonGraphContent{
			Title:       "New Comparison Graph",
			Description: "Edit this text to describe your performance metrics.",
			Data: []ComparisonEntry{
				{Name: "Competitor A", IOPS: 50, Throughput: 100},
				{Name: "Competitor B", IOPS: 80, Throughput: 150},
				{Name: "QuickStor", IOPS: 200, Throughput: 500},
			},
		}
	case SectionCustomHTML:
		return CustomHTMLContent{
			HTML: `<section class="py-20 bg-[#050505] text-center"><p class="text-gray-400">Custom section - edit to add content</p></section>`,
		}
	default:
		return UnknownContent{Raw: json.RawMessage("{}")}
	}
}

// sectionEnvelope is the wire form of a Section.
type sectionEnvelope struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the section as {id, type, content}.
func (s Section) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch c := s.Content.(type) {
	case UnknownContent:
		raw = c.Raw
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
	case nil:
		raw = json.RawMessage("{}")
	default:
		raw, err = json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("marshal section %s content: %w", s.ID, err)
		}
	}
	return json.Marshal(sectionEnvelope{ID: s.ID, Type: s.Type, Content: raw})
}

// UnmarshalJSON decodes the envelope and dispatches on the type tag. An
// unrecognised tag yields UnknownContent rather than an error; a payload
// that does not match its tag's shape is an error.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal section envelope: %w", err)
	}

	s.ID = env.ID
	s.Type = env.Type

	if len(env.Content) == 0 {
		env.Content = json.RawMessage("{}")
	}

	content, err := UnmarshalSectionContent(env.Type, env.Content)
	if err != nil {
		return fmt.Errorf("section %s: %w", env.ID, err)
	}
	s.Content = content
	return nil
}

// UnmarshalSectionContent decodes a raw payload into the typed content
// record for the given section kind.
func UnmarshalSectionContent(t SectionType, raw json.RawMessage) (SectionContent, error) {
	switch t {
	case SectionHero:
		var c HeroContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("hero content: %w", err)
		}
		return c, nil
	case SectionFeatureGrid:
		var c FeatureGridContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("feature grid content: %w", err)
		}
		return c, nil
	case SectionComparisonGraph:
		var c ComparisonGraphContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("comparison graph content: %w", err)
		}
		return c, nil
	case SectionCustomHTML:
		var c CustomHTMLContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("custom html content: %w", err)
		}
		return c, nil
	default:
		return UnknownContent{Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}
