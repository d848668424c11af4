// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quickstor/internal/cache"
	"quickstor/internal/document"
	"quickstor/internal/live"
	"quickstor/internal/models"
	"quickstor/internal/publish"
	"quickstor/internal/render"
	"quickstor/internal/sitestore"
)

// Admin groups the JSON editor API. Mutations apply to the in-memory
// working draft; save/discard/publish/reject drive the staging protocol.
type Admin struct {
	store     *sitestore.Store
	publisher *publish.Publisher
	remote    document.Store
	pages     *cache.PageCache
	hub       *live.Hub
	preview   *render.Renderer
}

// NewAdmin creates a new Admin handler group. preview renders staging
// previews with the live-reload snippet enabled.
func NewAdmin(store *sitestore.Store, publisher *publish.Publisher, remote document.Store, pages *cache.PageCache, hub *live.Hub, preview *render.Renderer) *Admin {
	return &Admin{
		store:     store,
		publisher: publisher,
		remote:    remote,
		pages:     pages,
		hub:       hub,
		preview:   preview,
	}
}

// Site returns the full working draft plus the editor cursors.
func (a *Admin) Site(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"site":              a.store.Snapshot(),
		"activePageId":      a.store.ActivePageID(),
		"selectedSectionId": a.store.SelectedSectionID(),
	})
}

// Status reports the staging and live document timestamps so the editor
// can show unsaved/unpublished indicators.
func (a *Admin) Status(w http.ResponseWriter, r *http.Request) {
	type docMeta struct {
		Exists        bool       `json:"exists"`
		LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
		LastPublished *time.Time `json:"lastPublished,omitempty"`
	}

	read := func(id string) docMeta {
		raw, err := a.remote.Get(r.Context(), document.SitesCollection, id)
		if err != nil {
			slog.Warn("status read failed", "doc", id, "error", err)
			return docMeta{}
		}
		if raw == nil {
			return docMeta{}
		}
		var doc models.SiteDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return docMeta{Exists: true}
		}
		meta := docMeta{Exists: true, LastPublished: doc.LastPublished}
		if !doc.LastUpdated.IsZero() {
			meta.LastUpdated = &doc.LastUpdated
		}
		return meta
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"staging": read(a.publisher.StagingID()),
		"live":    read(a.publisher.LiveID()),
	})
}

// --- Pages ---

// CreatePage adds a page to the working draft and makes it active.
func (a *Admin) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePage(req.Title, req.Slug); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	page, err := a.store.AddPage(req.Title, req.Slug)
	if errors.Is(err, sitestore.ErrSlugTaken) {
		writeError(w, http.StatusConflict, "slug is already in use by another page")
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// UpdatePage patches a page's title or slug.
func (a *Admin) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var patch sitestore.PagePatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Title != nil {
		if msg := validatePage(*patch.Title, ""); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	err := a.store.UpdatePage(chi.URLParam(r, "pageID"), patch)
	if errors.Is(err, sitestore.ErrSlugTaken) {
		writeError(w, http.StatusConflict, "slug is already in use by another page")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// DeletePage removes a page. Deleting home is a no-op by contract.
func (a *Admin) DeletePage(w http.ResponseWriter, r *http.Request) {
	a.store.DeletePage(chi.URLParam(r, "pageID"))
	writeJSON(w, http.StatusOK, map[string]any{
		"activePageId": a.store.ActivePageID(),
	})
}

// ActivatePage moves the editor's page cursor.
func (a *Admin) ActivatePage(w http.ResponseWriter, r *http.Request) {
	a.store.SetActivePage(chi.URLParam(r, "pageID"))
	writeJSON(w, http.StatusOK, map[string]any{
		"activePageId": a.store.ActivePageID(),
	})
}

// --- Sections ---

// sectionRequest is the wire form of section create/update payloads.
type sectionRequest struct {
	Type    models.SectionType `json:"type"`
	Content json.RawMessage    `json:"content,omitempty"`

	// LibraryID inserts a saved custom section from the library instead
	// of building content from Type/Content.
	LibraryID string `json:"libraryId,omitempty"`
}

// CreateSection appends a section to the active page. Content defaults to
// the kind's stock payload when omitted.
func (a *Admin) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LibraryID != "" {
		content, ok := a.libraryContent(req.LibraryID)
		if !ok {
			writeError(w, http.StatusNotFound, "custom section not found in library")
			return
		}
		section := a.store.AddSection(models.SectionCustomHTML, content)
		writeJSON(w, http.StatusCreated, section)
		return
	}

	if !models.KnownSectionType(req.Type) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown section type %q", req.Type))
		return
	}

	var content models.SectionContent
	if len(req.Content) > 0 {
		decoded, err := models.UnmarshalSectionContent(req.Type, req.Content)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := models.ValidateSectionContent(decoded); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		content = decoded
	}

	section := a.store.AddSection(req.Type, content)
	writeJSON(w, http.StatusCreated, section)
}

// libraryContent builds section content from a saved custom section.
func (a *Admin) libraryContent(id string) (models.SectionContent, bool) {
	site := a.store.Snapshot()
	for _, cs := range site.CustomSections {
		if cs.ID == id {
			return models.CustomHTMLContent{
				HTML:    cs.HTML,
				Schema:  cs.Schema,
				Content: cs.DefaultContent,
			}, true
		}
	}
	return nil, false
}

// UpdateSection replaces a section's content wholesale.
func (a *Admin) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !models.KnownSectionType(req.Type) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown section type %q", req.Type))
		return
	}

	content, err := models.UnmarshalSectionContent(req.Type, req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.ValidateSectionContent(content); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	a.store.UpdateSection(chi.URLParam(r, "sectionID"), content)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// ReorderSections replaces the active page's section order.
func (a *Admin) ReorderSections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sections []models.Section `json:"sections"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a.store.ReorderSections(req.Sections)
	writeJSON(w, http.StatusOK, map[string]any{"reordered": true})
}

// DeleteSection removes a section from the active page.
func (a *Admin) DeleteSection(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteSection(chi.URLParam(r, "sectionID"))
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// SelectSection moves the editor's section cursor.
func (a *Admin) SelectSection(w http.ResponseWriter, r *http.Request) {
	a.store.SelectSection(chi.URLParam(r, "sectionID"))
	writeJSON(w, http.StatusOK, map[string]any{
		"selectedSectionId": a.store.SelectedSectionID(),
	})
}

// --- Navbar / footer / theme ---

// UpdateNavbar patches the global navbar record.
func (a *Admin) UpdateNavbar(w http.ResponseWriter, r *http.Request) {
	var patch sitestore.NavbarPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.store.UpdateNavbar(patch)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// UpdateFooter patches the global footer record.
func (a *Admin) UpdateFooter(w http.ResponseWriter, r *http.Request) {
	var patch sitestore.FooterPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.store.UpdateFooter(patch)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// UpdateTheme merges a partial update into the active theme.
func (a *Admin) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var patch models.ThemePatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.store.UpdateTheme(patch)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// ApplyTheme replaces the active theme wholesale (e.g. from the library).
func (a *Admin) ApplyTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme models.Theme `json:"theme"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.store.ApplyTheme(req.Theme)
	writeJSON(w, http.StatusOK, map[string]any{"applied": true})
}

// SaveTheme clones the active theme into the saved-themes library.
func (a *Admin) SaveTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	saved := a.store.SaveThemeToLibrary(req.Name)
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteTheme removes a saved theme. The default theme is protected.
func (a *Admin) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteThemeFromLibrary(chi.URLParam(r, "themeID"))
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// --- Custom section library ---

// CreateCustomSection saves a reusable custom section to the library.
func (a *Admin) CreateCustomSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string               `json:"name"`
		HTML           string               `json:"html"`
		Schema         []models.SchemaField `json:"schema,omitempty"`
		DefaultContent map[string]string    `json:"defaultContent,omitempty"`
		Prompt         string               `json:"prompt,omitempty"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCustomSection(req.Name, req.HTML); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	cs := models.CustomSection{
		ID:             "custom-" + uuid.NewString(),
		Name:           req.Name,
		HTML:           req.HTML,
		Schema:         req.Schema,
		DefaultContent: req.DefaultContent,
		Prompt:         req.Prompt,
		CreatedAt:      time.Now(),
	}
	a.store.AddCustomSection(cs)
	writeJSON(w, http.StatusCreated, cs)
}

// DeleteCustomSection removes a library entry.
func (a *Admin) DeleteCustomSection(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteCustomSection(chi.URLParam(r, "sectionID"))
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// --- Staging protocol ---

// confirmRequest guards destructive operations: the client must send
// confirm=true, mirroring the editor's confirmation dialogs.
type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

func readConfirm(w http.ResponseWriter, r *http.Request) bool {
	var req confirmRequest
	if err := readJSON(w, r, &req); err != nil || !req.Confirm {
		writeError(w, http.StatusBadRequest, "confirmation required")
		return false
	}
	return true
}

// Save writes the working draft to the draft cache and the remote staging
// document, then tells preview viewers to refresh.
func (a *Admin) Save(w http.ResponseWriter, r *http.Request) {
	if err := a.publisher.Save(r.Context(), a.store.Snapshot()); err != nil {
		slog.Error("save failed", "error", err)
		writeError(w, http.StatusBadGateway, "saved locally, but the staging write failed")
		return
	}
	a.hub.Reload()
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

// Discard throws away unsaved working-draft edits by reloading the last
// locally saved state from the draft cache. Staging is not consulted:
// discard restores this editor's own last save, never a collaborator's.
// Destructive: requires confirmation.
func (a *Admin) Discard(w http.ResponseWriter, r *http.Request) {
	if !readConfirm(w, r) {
		return
	}

	a.store.ReplaceAll(a.publisher.LoadDraft(r.Context()))
	writeJSON(w, http.StatusOK, map[string]any{"discarded": true})
}

// Publish copies staging to live, clears the rendered-page cache, and
// tells viewers to refresh. Requires confirmation.
func (a *Admin) Publish(w http.ResponseWriter, r *http.Request) {
	if !readConfirm(w, r) {
		return
	}

	err := a.publisher.Publish(r.Context())
	if errors.Is(err, publish.ErrNothingStaged) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("publish failed", "error", err)
		writeError(w, http.StatusBadGateway, "publish failed")
		return
	}

	a.pages.InvalidateAll(r.Context())
	a.hub.Reload()
	writeJSON(w, http.StatusOK, map[string]any{"published": true})
}

// Reject restores staging from the live document, discarding staged edits,
// then reloads the editor's working draft from the restored staging.
// Requires confirmation.
func (a *Admin) Reject(w http.ResponseWriter, r *http.Request) {
	if !readConfirm(w, r) {
		return
	}

	err := a.publisher.Reject(r.Context())
	if errors.Is(err, publish.ErrNothingLive) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("reject failed", "error", err)
		writeError(w, http.StatusBadGateway, "reject failed")
		return
	}

	site, err := a.publisher.LoadStaged(r.Context(), models.DefaultSite())
	if err != nil {
		slog.Warn("reject: staged reload failed", "error", err)
	} else {
		a.store.ReplaceAll(site)
	}
	a.hub.Reload()
	writeJSON(w, http.StatusOK, map[string]any{"rejected": true})
}

// Preview renders the active page of the working draft as HTML, with the
// live-reload snippet so the preview follows subsequent edits.
func (a *Admin) Preview(w http.ResponseWriter, r *http.Request) {
	site := a.store.Snapshot()
	page, ok := a.store.ActivePage()
	if !ok {
		http.NotFound(w, r)
		return
	}

	html, err := a.preview.RenderPage(site, page)
	if err != nil {
		slog.Error("preview render failed", "error", err, "page", page.ID)
		writeError(w, http.StatusInternalServerError, "preview render failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
