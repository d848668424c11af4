// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish implements the staging/live protocol: the working draft
// is saved to a durable draft cache and a shared remote staging document;
// an explicit publish copies staging to the live document the public site
// renders from; reject overwrites staging from live. Separating "saved my
// edits" from "published to visitors" gives collaborators a shared draft,
// a manual approval gate, and an escape hatch.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quickstor/internal/cache"
	"quickstor/internal/document"
	"quickstor/internal/models"
)

// Protocol failure conditions. Both are explicit results, never panics.
var (
	// ErrNothingStaged means publish was called but no staging document
	// exists. Any existing live document is left untouched.
	ErrNothingStaged = errors.New("publish: no staged content — save a draft first")

	// ErrNothingLive means reject was called but no live document exists
	// to restore staging from.
	ErrNothingLive = errors.New("publish: no live content to restore from")
)

// LocalCache is the durable draft cache consumed by the publisher. ok is
// false when a key has never been written.
type LocalCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Publisher moves site documents between the draft cache, the remote
// staging document, and the remote live document.
type Publisher struct {
	remote document.Store
	drafts LocalCache
	env    string

	// now is swappable for tests.
	now func() time.Time
}

// New creates a publisher for the given environment. The environment name
// selects the sites/<env>-staging and sites/<env>-live documents.
func New(remote document.Store, drafts LocalCache, env string) *Publisher {
	return &Publisher{
		remote: remote,
		drafts: drafts,
		env:    env,
		now:    time.Now,
	}
}

// StagingID returns the staging document id this publisher writes.
func (p *Publisher) StagingID() string { return document.StagingID(p.env) }

// LiveID returns the live document id this publisher publishes to.
func (p *Publisher) LiveID() string { return document.LiveID(p.env) }

// Save serializes the working aggregate to the draft cache key by key,
// then writes the same payload plus a timestamp to the remote staging
// document. The local writes always run first and are attempted in full
// even when one fails, so a remote outage never leaves the operator
// without a durable copy. Only a remote failure fails the operation.
func (p *Publisher) Save(ctx context.Context, site models.Site) error {
	for key, value := range siteFields(site) {
		if err := p.drafts.Set(ctx, key, value); err != nil {
			slog.Warn("draft cache write failed", "key", key, "error", err)
		}
	}

	doc := models.SiteDocument{
		Navbar:         site.Navbar,
		Footer:         site.Footer,
		Pages:          site.Pages,
		Theme:          site.Theme,
		SavedThemes:    site.SavedThemes,
		CustomSections: site.CustomSections,
		LastUpdated:    p.now(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save: marshal site document: %w", err)
	}

	if err := p.remote.Set(ctx, document.SitesCollection, p.StagingID(), payload); err != nil {
		return fmt.Errorf("save: write staging document: %w", err)
	}
	return nil
}

// LoadDraft rebuilds the working aggregate from the draft cache, falling
// back to the built-in default for any field that is absent or unreadable.
// Used on editor start and by discard.
func (p *Publisher) LoadDraft(ctx context.Context) models.Site {
	site := models.DefaultSite()

	loadField(ctx, p.drafts, cache.DraftKeyNavbar, &site.Navbar)
	loadField(ctx, p.drafts, cache.DraftKeyFooter, &site.Footer)
	loadField(ctx, p.drafts, cache.DraftKeyPages, &site.Pages)
	loadField(ctx, p.drafts, cache.DraftKeyActiveTheme, &site.Theme)
	loadField(ctx, p.drafts, cache.DraftKeySavedThemes, &site.SavedThemes)
	loadField(ctx, p.drafts, cache.DraftKeyCustomSections, &site.CustomSections)

	return site
}

// LoadStaged performs the one-time editor-load read of the remote staging
// document and merges it into base field by field: fields present in
// staging win, absent fields keep the base (cache-or-default) value.
func (p *Publisher) LoadStaged(ctx context.Context, base models.Site) (models.Site, error) {
	raw, err := p.remote.Get(ctx, document.SitesCollection, p.StagingID())
	if err != nil {
		return base, fmt.Errorf("load staged: %w", err)
	}
	if raw == nil {
		return base, nil
	}

	// Pointer fields distinguish "absent from staging" from zero values.
	var partial struct {
		Navbar         *models.Navbar          `json:"navbar"`
		Footer         *models.Footer          `json:"footer"`
		Pages          *[]models.Page          `json:"pages"`
		Theme          *models.Theme           `json:"theme"`
		SavedThemes    *[]models.Theme         `json:"savedThemes"`
		CustomSections *[]models.CustomSection `json:"customSections"`
	}
	if err := json.Unmarshal(raw, &partial); err != nil {
		return base, fmt.Errorf("load staged: decode: %w", err)
	}

	if partial.Navbar != nil {
		base.Navbar = *partial.Navbar
	}
	if partial.Footer != nil {
		base.Footer = *partial.Footer
	}
	if partial.Pages != nil {
		base.Pages = *partial.Pages
	}
	if partial.Theme != nil {
		base.Theme = *partial.Theme
	}
	if partial.SavedThemes != nil {
		base.SavedThemes = *partial.SavedThemes
	}
	if partial.CustomSections != nil {
		base.CustomSections = *partial.CustomSections
	}
	return base, nil
}

// Publish copies the remote staging document to the live document with an
// updated publish timestamp. Staging is left unchanged — it remains the
// draft of record. Fails with ErrNothingStaged when nothing was saved.
func (p *Publisher) Publish(ctx context.Context) error {
	raw, err := p.remote.Get(ctx, document.SitesCollection, p.StagingID())
	if err != nil {
		return fmt.Errorf("publish: read staging: %w", err)
	}
	if raw == nil {
		return ErrNothingStaged
	}

	var doc models.SiteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("publish: decode staging: %w", err)
	}
	published := p.now()
	doc.LastPublished = &published

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("publish: marshal live document: %w", err)
	}
	if err := p.remote.Set(ctx, document.SitesCollection, p.LiveID(), payload); err != nil {
		return fmt.Errorf("publish: write live document: %w", err)
	}
	return nil
}

// Reject overwrites the remote staging document with the live payload,
// discarding un-published staged edits. Fails with ErrNothingLive when no
// live document exists. Destructive: callers must confirm first.
func (p *Publisher) Reject(ctx context.Context) error {
	raw, err := p.remote.Get(ctx, document.SitesCollection, p.LiveID())
	if err != nil {
		return fmt.Errorf("reject: read live: %w", err)
	}
	if raw == nil {
		return ErrNothingLive
	}

	if err := p.remote.Set(ctx, document.SitesCollection, p.StagingID(), raw); err != nil {
		return fmt.Errorf("reject: write staging document: %w", err)
	}
	return nil
}

// siteFields serializes the aggregate into the per-field draft cache
// entries. Marshal errors are impossible for these types and are treated
// as such.
func siteFields(site models.Site) map[string]string {
	fields := make(map[string]string, 6)
	put := func(key string, v any) {
		b, err := json.Marshal(v)
		if err != nil {
			slog.Error("draft field marshal failed", "key", key, "error", err)
			return
		}
		fields[key] = string(b)
	}
	put(cache.DraftKeyNavbar, site.Navbar)
	put(cache.DraftKeyFooter, site.Footer)
	put(cache.DraftKeyPages, site.Pages)
	put(cache.DraftKeyActiveTheme, site.Theme)
	put(cache.DraftKeySavedThemes, site.SavedThemes)
	put(cache.DraftKeyCustomSections, site.CustomSections)
	return fields
}

// loadField overwrites dst with the cached JSON value for key, if present
// and well-formed. Anything else keeps the default already in dst.
func loadField[T any](ctx context.Context, drafts LocalCache, key string, dst *T) {
	value, ok, err := drafts.Get(ctx, key)
	if err != nil {
		slog.Warn("draft cache read failed", "key", key, "error", err)
		return
	}
	if !ok {
		return
	}
	var decoded T
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		slog.Warn("draft cache entry unreadable, using default", "key", key, "error", err)
		return
	}
	*dst = decoded
}
