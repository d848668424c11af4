// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"quickstor/internal/models"
)

// Retry policy for rate-limited provider calls. Other failures are
// surfaced immediately — the operator retries interactively.
const (
	maxAttempts   = 3
	retryBaseWait = 500 * time.Millisecond
)

// GeneratedSection is the validated result of a generate or edit call:
// the section HTML with {{key}} placeholders, the schema describing each
// placeholder, and the initial content mapping.
type GeneratedSection struct {
	HTML           string               `json:"html"`
	Schema         []models.SchemaField `json:"schema"`
	DefaultContent map[string]string    `json:"defaultContent"`
}

// ExtractResult is the outcome of a data extraction from pasted file text.
type ExtractResult struct {
	Data   models.SectionContent
	Method string // "ai" or "csv"
}

// SectionGenerator turns natural-language instructions into custom HTML
// sections using the active provider. Output is shape-checked before it is
// returned; nothing unvalidated reaches the content store.
type SectionGenerator struct {
	registry *Registry

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// NewSectionGenerator creates a generator over the provider registry.
func NewSectionGenerator(registry *Registry) *SectionGenerator {
	return &SectionGenerator{registry: registry, sleep: time.Sleep}
}

const generateSystemPrompt = `You are a web designer producing self-contained HTML sections for a dark-themed storage-hardware marketing site (background #050505, blue accents, Tailwind utility classes).

Respond with a single JSON object and nothing else:
{"html": "<section>...</section>", "schema": [{"key": "...", "label": "...", "type": "text", "description": "..."}], "defaultContent": {"key": "value"}}

Rules:
- html is one complete <section> element. Editable text becomes {{key}} placeholders.
- schema lists every placeholder key with a human-readable label.
- defaultContent supplies the initial value for every key in schema.
- No markdown fences, no explanations.`

// Generate produces a new section from a natural-language instruction.
func (g *SectionGenerator) Generate(ctx context.Context, instruction string) (*GeneratedSection, error) {
	provider, err := g.registry.Active()
	if err != nil {
		return nil, err
	}

	raw, err := g.withRetry(ctx, func() (string, error) {
		return provider.Generate(ctx, generateSystemPrompt, instruction)
	})
	if err != nil {
		return nil, fmt.Errorf("generate section: %w", err)
	}

	return g.parseGenerated(raw)
}

// Edit revises existing section HTML through a multi-turn conversation.
// history holds prior exchanges so iterative refinement keeps context.
func (g *SectionGenerator) Edit(ctx context.Context, history []Turn, currentHTML, instruction string) (*GeneratedSection, error) {
	provider, err := g.registry.Active()
	if err != nil {
		return nil, err
	}

	system := generateSystemPrompt + "\n\n## CURRENT HTML\nThe user is editing this section:\n" + currentHTML +
		"\n\nAlways respond with the COMPLETE updated JSON object, keeping styling consistent."

	turns := append(append([]Turn(nil), history...), Turn{
		Role: "user",
		Text: "Edit request: " + instruction,
	})

	raw, err := g.withRetry(ctx, func() (string, error) {
		return provider.Chat(ctx, system, turns)
	})
	if err != nil {
		return nil, fmt.Errorf("edit section: %w", err)
	}

	return g.parseGenerated(raw)
}

// Extract pulls structured section data out of pasted file text. For
// comparison graphs a plain CSV parse is tried first — it is cheap,
// deterministic, and covers the common export format; the AI handles
// everything else.
func (g *SectionGenerator) Extract(ctx context.Context, fileText string, target models.SectionType) (*ExtractResult, error) {
	if target == models.SectionComparisonGraph {
		if data, err := parseComparisonCSV(fileText); err == nil {
			return &ExtractResult{Data: data, Method: "csv"}, nil
		}
	}

	provider, err := g.registry.Active()
	if err != nil {
		return nil, err
	}

	system, err := extractSystemPrompt(target)
	if err != nil {
		return nil, err
	}

	raw, err := g.withRetry(ctx, func() (string, error) {
		return provider.Generate(ctx, system, fileText)
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s data: %w", target, err)
	}

	content, err := models.UnmarshalSectionContent(target, json.RawMessage(stripFences(raw)))
	if err != nil {
		return nil, fmt.Errorf("extract %s data: %w", target, err)
	}
	if err := models.ValidateSectionContent(content); err != nil {
		return nil, fmt.Errorf("extract %s data: %w", target, err)
	}
	return &ExtractResult{Data: content, Method: "ai"}, nil
}

func extractSystemPrompt(target models.SectionType) (string, error) {
	switch target {
	case models.SectionComparisonGraph:
		return `Extract performance benchmark data from the user's text. Respond with a single JSON object and nothing else:
{"title": "...", "description": "...", "data": [{"name": "...", "iops": 0, "throughput": 0}]}`, nil
	case models.SectionFeatureGrid:
		return `Extract product features from the user's text. Respond with a single JSON object and nothing else:
{"features": [{"icon": "Shield", "title": "...", "description": "..."}]}`, nil
	default:
		return "", fmt.Errorf("extraction is not supported for section type %s", target)
	}
}

// parseGenerated cleans the provider response and decodes it into a
// validated GeneratedSection. A bare-HTML response (older prompt formats,
// stubborn models) is accepted with an empty schema.
func (g *SectionGenerator) parseGenerated(raw string) (*GeneratedSection, error) {
	cleaned := stripFences(raw)

	var gen GeneratedSection
	if err := json.Unmarshal([]byte(cleaned), &gen); err != nil || gen.HTML == "" {
		html, ok := extractSectionHTML(cleaned)
		if !ok {
			return nil, fmt.Errorf("ai did not return a usable section: %.120s", cleaned)
		}
		gen = GeneratedSection{HTML: html}
	}

	// Shape-check before the result can reach the store.
	content := models.CustomHTMLContent{
		HTML:    gen.HTML,
		Schema:  gen.Schema,
		Content: gen.DefaultContent,
	}
	if err := models.ValidateSectionContent(content); err != nil {
		return nil, err
	}
	return &gen, nil
}

var (
	openFence  = regexp.MustCompile("(?i)^```(?:html|json)?\\s*")
	closeFence = regexp.MustCompile("\\s*```$")
	sectionRe  = regexp.MustCompile(`(?is)<section[\s\S]*</section>`)
)

// stripFences removes a wrapping markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = openFence.ReplaceAllString(s, "")
	s = closeFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractSectionHTML pulls a <section>...</section> element out of a
// response that contains surrounding prose.
func extractSectionHTML(s string) (string, bool) {
	if strings.HasPrefix(s, "<") {
		return s, true
	}
	if m := sectionRe.FindString(s); m != "" {
		return m, true
	}
	return "", false
}

// withRetry runs fn with bounded exponential backoff on rate-limiting
// responses. Any other error is returned immediately.
func (g *SectionGenerator) withRetry(ctx context.Context, fn func() (string, error)) (string, error) {
	wait := retryBaseWait
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
		if attempt == maxAttempts {
			break
		}
		slog.Warn("ai provider rate limited, backing off",
			"attempt", attempt,
			"wait", wait.String(),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			g.sleep(wait)
		}
		wait *= 2
	}
	return "", lastErr
}

// parseComparisonCSV parses "name,iops,throughput" rows, with or without
// a header line.
func parseComparisonCSV(text string) (models.ComparisonGraphContent, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return models.ComparisonGraphContent{}, fmt.Errorf("parse csv: %w", err)
	}

	var data []models.ComparisonEntry
	for i, rec := range records {
		if len(rec) < 3 {
			return models.ComparisonGraphContent{}, fmt.Errorf("csv row %d: want 3 columns, got %d", i+1, len(rec))
		}
		iops, err1 := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		tput, err2 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err1 != nil || err2 != nil {
			if i == 0 {
				continue // header line
			}
			return models.ComparisonGraphContent{}, fmt.Errorf("csv row %d: non-numeric values", i+1)
		}
		data = append(data, models.ComparisonEntry{
			Name:       strings.TrimSpace(rec[0]),
			IOPS:       iops,
			Throughput: tput,
		})
	}

	if len(data) == 0 {
		return models.ComparisonGraphContent{}, fmt.Errorf("csv contained no data rows")
	}
	return models.ComparisonGraphContent{
		Title: "Imported Benchmark Data",
		Data:  data,
	}, nil
}
