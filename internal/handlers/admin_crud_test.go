// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quickstor/internal/models"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func jsonRequest(method, target, body string) *http.Request {
	return httptest.NewRequest(method, target, strings.NewReader(body))
}

func TestCreatePage(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreatePage(rec, jsonRequest("POST", "/admin/api/pages", `{"title":"About Us","slug":"about"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var page models.Page
	decodeBody(t, rec, &page)
	if page.Slug != "/about" {
		t.Errorf("slug = %q, want normalized /about", page.Slug)
	}
	if env.Store.ActivePageID() != page.ID {
		t.Errorf("new page should become active")
	}
}

func TestCreatePageRejectsDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreatePage(rec, jsonRequest("POST", "/admin/api/pages", `{"title":"One","slug":"about"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", rec.Code)
	}

	// Same slug in a different spelling still collides after normalization.
	rec = httptest.NewRecorder()
	env.Admin.CreatePage(rec, jsonRequest("POST", "/admin/api/pages", `{"title":"Two","slug":"/about/"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate slug: status = %d, want 409", rec.Code)
	}
}

func TestCreatePageRequiresTitle(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreatePage(rec, jsonRequest("POST", "/admin/api/pages", `{"title":"  ","slug":"x"}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank title: status = %d, want 422", rec.Code)
	}
}

func TestDeleteHomePageIsNoop(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("DELETE", "/admin/api/pages/home", nil), "pageID", models.HomePageID)
	env.Admin.DeletePage(rec, req)

	site := env.Store.Snapshot()
	if site.FindPage(models.HomePageID) == nil {
		t.Fatal("home page must never be deleted")
	}
}

func TestDeleteActivePageFallsBackToHome(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreatePage(rec, jsonRequest("POST", "/admin/api/pages", `{"title":"Temp","slug":"temp"}`))
	var page models.Page
	decodeBody(t, rec, &page)

	rec = httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("DELETE", "/admin/api/pages/"+page.ID, nil), "pageID", page.ID)
	env.Admin.DeletePage(rec, req)

	var resp struct {
		ActivePageID string `json:"activePageId"`
	}
	decodeBody(t, rec, &resp)
	if resp.ActivePageID != models.HomePageID {
		t.Errorf("activePageId = %q, want home", resp.ActivePageID)
	}
}

func TestCreateSectionUsesDefaultContent(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreateSection(rec, jsonRequest("POST", "/admin/api/sections", `{"type":"FEATURE_GRID"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var section models.Section
	decodeBody(t, rec, &section)
	grid, ok := section.Content.(models.FeatureGridContent)
	if !ok {
		t.Fatalf("content type = %T, want FeatureGridContent", section.Content)
	}
	if len(grid.Features) == 0 {
		t.Error("default feature grid should not be empty")
	}
	if env.Store.SelectedSectionID() != section.ID {
		t.Error("new section should be selected")
	}
}

func TestCreateSectionRejectsInvalidContent(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreateSection(rec, jsonRequest("POST", "/admin/api/sections",
		`{"type":"FEATURE_GRID","content":{"features":[]}}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty feature grid: status = %d, want 422", rec.Code)
	}
}

func TestCreateSectionRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)

	before := len(env.Store.Snapshot().Pages[0].Sections)

	rec := httptest.NewRecorder()
	env.Admin.CreateSection(rec, jsonRequest("POST", "/admin/api/sections", `{"type":"VIDEO_EMBED"}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown type: status = %d, want 422", rec.Code)
	}
	if got := len(env.Store.Snapshot().Pages[0].Sections); got != before {
		t.Errorf("sections = %d, want %d: unknown type must not add a section", got, before)
	}

	rec = httptest.NewRecorder()
	req := withChiURLParam(jsonRequest("PUT", "/admin/api/sections/hero-main",
		`{"type":"VIDEO_EMBED","content":{"url":"x"}}`), "sectionID", "hero-main")
	env.Admin.UpdateSection(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown type on update: status = %d, want 422", rec.Code)
	}
}

func TestCreateSectionFromLibrary(t *testing.T) {
	env := newTestEnv(t)
	env.Store.AddCustomSection(models.CustomSection{
		ID:             "custom-lib-1",
		Name:           "Banner",
		HTML:           "<section><h2>{{headline}}</h2></section>",
		DefaultContent: map[string]string{"headline": "Hi"},
		CreatedAt:      time.Now(),
	})

	rec := httptest.NewRecorder()
	env.Admin.CreateSection(rec, jsonRequest("POST", "/admin/api/sections", `{"libraryId":"custom-lib-1"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var section models.Section
	decodeBody(t, rec, &section)
	if section.Type != models.SectionCustomHTML {
		t.Errorf("type = %s, want CUSTOM_HTML", section.Type)
	}
	content, ok := section.Content.(models.CustomHTMLContent)
	if !ok {
		t.Fatalf("content type = %T", section.Content)
	}
	if content.Content["headline"] != "Hi" {
		t.Errorf("library default content not carried over: %v", content.Content)
	}
}

func TestCreateSectionFromUnknownLibraryID(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreateSection(rec, jsonRequest("POST", "/admin/api/sections", `{"libraryId":"nope"}`))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateSectionReplacesContent(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	req := withChiURLParam(jsonRequest("PUT", "/admin/api/sections/features-main",
		`{"type":"FEATURE_GRID","content":{"features":[{"icon":"Zap","title":"Only One"}]}}`),
		"sectionID", "features-main")
	env.Admin.UpdateSection(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	site := env.Store.Snapshot()
	home := site.FindPage(models.HomePageID)
	for _, s := range home.Sections {
		if s.ID != "features-main" {
			continue
		}
		grid := s.Content.(models.FeatureGridContent)
		if len(grid.Features) != 1 || grid.Features[0].Title != "Only One" {
			t.Errorf("content not replaced: %+v", grid)
		}
		return
	}
	t.Fatal("features-main not found")
}

func TestReorderSections(t *testing.T) {
	env := newTestEnv(t)

	home, _ := env.Store.ActivePage()
	reversed := make([]models.Section, 0, len(home.Sections))
	for i := len(home.Sections) - 1; i >= 0; i-- {
		reversed = append(reversed, home.Sections[i])
	}
	payload, _ := json.Marshal(map[string]any{"sections": reversed})

	rec := httptest.NewRecorder()
	env.Admin.ReorderSections(rec, jsonRequest("POST", "/admin/api/sections/reorder", string(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	after, _ := env.Store.ActivePage()
	if after.Sections[0].ID != home.Sections[len(home.Sections)-1].ID {
		t.Errorf("order not applied: first = %s", after.Sections[0].ID)
	}
}

func TestThemeUpdateAndLibrary(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.UpdateTheme(rec, jsonRequest("PATCH", "/admin/api/theme", `{"colors":{"primary":"#ff0000"}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("patch theme: status = %d", rec.Code)
	}

	site := env.Store.Snapshot()
	if site.Theme.Colors.Primary != "#ff0000" {
		t.Errorf("primary = %q", site.Theme.Colors.Primary)
	}
	if site.Theme.Colors.Background != "#050505" {
		t.Errorf("untouched color changed: %q", site.Theme.Colors.Background)
	}

	rec = httptest.NewRecorder()
	env.Admin.SaveTheme(rec, jsonRequest("POST", "/admin/api/themes", `{"name":"Red Variant"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("save theme: status = %d", rec.Code)
	}
	var saved models.Theme
	decodeBody(t, rec, &saved)
	if saved.ID == models.DefaultThemeID {
		t.Error("saved theme must get a fresh id")
	}

	// The default theme is protected from deletion.
	rec = httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("DELETE", "/admin/api/themes/default", nil), "themeID", models.DefaultThemeID)
	env.Admin.DeleteTheme(rec, req)
	site = env.Store.Snapshot()
	found := false
	for _, th := range site.SavedThemes {
		if th.ID == models.DefaultThemeID {
			found = true
		}
	}
	if !found {
		t.Error("default theme was deleted from the library")
	}
}

func TestCustomSectionLibrary(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.CreateCustomSection(rec, jsonRequest("POST", "/admin/api/custom-sections",
		`{"name":"Promo","html":"<section>promo</section>"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var cs models.CustomSection
	decodeBody(t, rec, &cs)

	rec = httptest.NewRecorder()
	env.Admin.CreateCustomSection(rec, jsonRequest("POST", "/admin/api/custom-sections",
		`{"name":"","html":"<section></section>"}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank name: status = %d, want 422", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("DELETE", "/admin/api/custom-sections/"+cs.ID, nil), "sectionID", cs.ID)
	env.Admin.DeleteCustomSection(rec, req)
	if len(env.Store.Snapshot().CustomSections) != 0 {
		t.Error("custom section not removed")
	}
}

func TestPreviewRendersActivePage(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Preview(rec, httptest.NewRequest("GET", "/admin/api/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "QUICKSTOR") {
		t.Error("preview missing navbar logo")
	}
	if !strings.Contains(body, "/ws/live") {
		t.Error("preview should carry the live-reload snippet")
	}
}
