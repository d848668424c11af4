// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"quickstor/internal/cache"
	"quickstor/internal/document"
	"quickstor/internal/models"
	"quickstor/internal/render"
)

// Public serves the visitor-facing site from the live document. It checks
// the Valkey page cache before invoking the renderer and stores rendered
// results on miss.
type Public struct {
	remote    document.Store
	renderer  *render.Renderer
	pageCache *cache.PageCache
	liveID    string
}

// NewPublic creates a new Public handler. liveID names the live site
// document for this environment.
func NewPublic(remote document.Store, renderer *render.Renderer, pageCache *cache.PageCache, liveID string) *Public {
	return &Public{
		remote:    remote,
		renderer:  renderer,
		pageCache: pageCache,
		liveID:    liveID,
	}
}

// Page renders the page matching the request path. Unmatched paths fall
// back to the home page; a site with no live document yet gets a simple
// holding page.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.PathKey(r.URL.Path)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	raw, err := p.remote.Get(ctx, document.SitesCollection, p.liveID)
	if err != nil {
		slog.Error("live document read failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if raw == nil {
		p.writeHolding(w)
		return
	}

	var doc models.SiteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Error("live document decode failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	site := doc.Site()
	page := site.PageForPath(r.URL.Path)
	if page == nil {
		http.NotFound(w, r)
		return
	}

	rendered, err := p.renderer.RenderPage(site, *page)
	if err != nil {
		slog.Error("page render failed", "error", err, "page", page.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, rendered)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(rendered)
}

// writeHolding answers requests made before anything has been published.
// Not cached, so the first publish shows up immediately.
func (p *Public) writeHolding(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html><head><title>QuickStor</title></head>
<body style="background:#050505;color:#e5e5e5;font-family:system-ui,sans-serif;display:flex;align-items:center;justify-content:center;min-height:100vh;margin:0">
<div style="text-align:center">
<h1 style="font-size:2rem;font-weight:700"><span style="color:#2563eb">Quick</span>Stor</h1>
<p style="color:#737373;margin-top:.5rem">Nothing has been published yet.</p>
</div></body></html>`))
}
