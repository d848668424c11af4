// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickstor/internal/document"
	"quickstor/internal/models"
)

func setLogo(t *testing.T, env *testEnv, logo string) {
	t.Helper()
	rec := httptest.NewRecorder()
	env.Admin.UpdateNavbar(rec, jsonRequest("PATCH", "/admin/api/navbar", `{"logo":"`+logo+`"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("update navbar: status = %d", rec.Code)
	}
}

func stagingDoc(t *testing.T, env *testEnv) *models.SiteDocument {
	t.Helper()
	raw, err := env.Remote.Get(context.Background(), document.SitesCollection, env.Publisher.StagingID())
	if err != nil {
		t.Fatalf("read staging: %v", err)
	}
	if raw == nil {
		return nil
	}
	var doc models.SiteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode staging: %v", err)
	}
	return &doc
}

func liveDoc(t *testing.T, env *testEnv) *models.SiteDocument {
	t.Helper()
	raw, err := env.Remote.Get(context.Background(), document.SitesCollection, env.Publisher.LiveID())
	if err != nil {
		t.Fatalf("read live: %v", err)
	}
	if raw == nil {
		return nil
	}
	var doc models.SiteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode live: %v", err)
	}
	return &doc
}

func TestSaveWritesStagingDocument(t *testing.T) {
	env := newTestEnv(t)
	setLogo(t, env, "SAVED")

	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("save: status = %d: %s", rec.Code, rec.Body.String())
	}

	doc := stagingDoc(t, env)
	if doc == nil {
		t.Fatal("no staging document written")
	}
	if doc.Navbar.Logo != "SAVED" {
		t.Errorf("staging logo = %q", doc.Navbar.Logo)
	}
	if doc.LastUpdated.IsZero() {
		t.Error("staging document missing lastUpdated")
	}
	if doc.LastPublished != nil {
		t.Error("staging document should not carry lastPublished")
	}
}

func TestDiscardRestoresLastSavedState(t *testing.T) {
	env := newTestEnv(t)

	setLogo(t, env, "SAVED")
	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))

	// Unsaved edit on top.
	setLogo(t, env, "UNSAVED")

	// Discard requires explicit confirmation.
	rec = httptest.NewRecorder()
	env.Admin.Discard(rec, jsonRequest("POST", "/admin/api/discard", `{}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed discard: status = %d, want 400", rec.Code)
	}
	if env.Store.Snapshot().Navbar.Logo != "UNSAVED" {
		t.Error("unconfirmed discard must not change the draft")
	}

	rec = httptest.NewRecorder()
	env.Admin.Discard(rec, jsonRequest("POST", "/admin/api/discard", `{"confirm":true}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("discard: status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := env.Store.Snapshot().Navbar.Logo; got != "SAVED" {
		t.Errorf("logo after discard = %q, want SAVED", got)
	}
}

func TestDiscardIgnoresCollaboratorStaging(t *testing.T) {
	env := newTestEnv(t)

	setLogo(t, env, "MINE")
	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))

	// Another editor saves staging behind this one's back.
	theirs := models.DefaultSite()
	theirs.Navbar.Logo = "THEIRS"
	raw, err := json.Marshal(models.SiteDocument{
		Navbar: theirs.Navbar,
		Footer: theirs.Footer,
		Pages:  theirs.Pages,
		Theme:  theirs.Theme,
	})
	if err != nil {
		t.Fatalf("marshal staging: %v", err)
	}
	if err := env.Remote.Set(context.Background(), document.SitesCollection, env.Publisher.StagingID(), raw); err != nil {
		t.Fatalf("write staging: %v", err)
	}

	setLogo(t, env, "UNSAVED")
	rec = httptest.NewRecorder()
	env.Admin.Discard(rec, jsonRequest("POST", "/admin/api/discard", `{"confirm":true}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("discard: status = %d: %s", rec.Code, rec.Body.String())
	}

	// Discard restores this editor's own last save, never staging.
	if got := env.Store.Snapshot().Navbar.Logo; got != "MINE" {
		t.Errorf("logo after discard = %q, want MINE", got)
	}
}

func TestPublishRequiresStagedContent(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("publish with nothing staged: status = %d, want 409", rec.Code)
	}
	if liveDoc(t, env) != nil {
		t.Error("live document must not be created by a failed publish")
	}
}

func TestPublishCopiesStagingToLive(t *testing.T) {
	env := newTestEnv(t)
	setLogo(t, env, "GOING LIVE")

	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))

	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: status = %d: %s", rec.Code, rec.Body.String())
	}

	doc := liveDoc(t, env)
	if doc == nil {
		t.Fatal("no live document after publish")
	}
	if doc.Navbar.Logo != "GOING LIVE" {
		t.Errorf("live logo = %q", doc.Navbar.Logo)
	}
	if doc.LastPublished == nil {
		t.Error("live document missing lastPublished")
	}

	// Staging remains the draft of record, untouched by publish.
	if staged := stagingDoc(t, env); staged.LastPublished != nil {
		t.Error("publish must not modify the staging document")
	}
}

func TestRejectRestoresStagingFromLive(t *testing.T) {
	env := newTestEnv(t)

	// Nothing live yet: reject is refused.
	rec := httptest.NewRecorder()
	env.Admin.Reject(rec, jsonRequest("POST", "/admin/api/reject", `{"confirm":true}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("reject with nothing live: status = %d, want 409", rec.Code)
	}

	// Publish one version, then stage a different one.
	setLogo(t, env, "LIVE VERSION")
	rec = httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))

	setLogo(t, env, "BAD DRAFT")
	rec = httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))

	rec = httptest.NewRecorder()
	env.Admin.Reject(rec, jsonRequest("POST", "/admin/api/reject", `{"confirm":true}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: status = %d: %s", rec.Code, rec.Body.String())
	}

	if staged := stagingDoc(t, env); staged.Navbar.Logo != "LIVE VERSION" {
		t.Errorf("staging logo after reject = %q, want LIVE VERSION", staged.Navbar.Logo)
	}
	// The editor's working draft follows the restored staging.
	if got := env.Store.Snapshot().Navbar.Logo; got != "LIVE VERSION" {
		t.Errorf("draft logo after reject = %q, want LIVE VERSION", got)
	}
}

func TestStatusReportsDocuments(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Status(rec, httptest.NewRequest("GET", "/admin/api/status", nil))

	var resp struct {
		Staging struct {
			Exists bool `json:"exists"`
		} `json:"staging"`
		Live struct {
			Exists bool `json:"exists"`
		} `json:"live"`
	}
	decodeBody(t, rec, &resp)
	if resp.Staging.Exists || resp.Live.Exists {
		t.Errorf("fresh env reports documents: %+v", resp)
	}

	rec = httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))

	rec = httptest.NewRecorder()
	env.Admin.Status(rec, httptest.NewRequest("GET", "/admin/api/status", nil))
	decodeBody(t, rec, &resp)
	if !resp.Staging.Exists || !resp.Live.Exists {
		t.Errorf("after save+publish: %+v", resp)
	}
}
