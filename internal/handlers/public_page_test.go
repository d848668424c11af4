// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublicHoldingPageBeforePublish(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.Page(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nothing has been published yet") {
		t.Error("expected the holding page before first publish")
	}
}

func TestPublicServesLivePage(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))

	rec = httptest.NewRecorder()
	env.Public.Page(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "QUICKSTOR") {
		t.Error("published page missing navbar logo")
	}
	// Public pages subscribe for re-render on the next publish.
	if !strings.Contains(body, "/ws/live") {
		t.Error("public page should include the reload script")
	}
}

func TestPublicServesCachedCopy(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))

	rec = httptest.NewRecorder()
	env.Public.Page(rec, httptest.NewRequest("GET", "/", nil))
	first := rec.Body.String()

	// Change live content behind the cache's back; the cached copy wins
	// until invalidation.
	setLogo(t, env, "CHANGED")
	rec = httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	env.Publisher.Publish(httptest.NewRequest("GET", "/", nil).Context())

	rec = httptest.NewRecorder()
	env.Public.Page(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Body.String() != first {
		t.Error("expected the cached render before invalidation")
	}
}

func TestPublicUnknownPathFallsBackToHome(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Admin.Save(rec, httptest.NewRequest("POST", "/admin/api/save", nil))
	rec = httptest.NewRecorder()
	env.Admin.Publish(rec, jsonRequest("POST", "/admin/api/publish", `{"confirm":true}`))

	rec = httptest.NewRecorder()
	env.Public.Page(rec, httptest.NewRequest("GET", "/no-such-page", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SPEED OF LIGHT") {
		t.Error("unmatched path should render the home page")
	}
}
