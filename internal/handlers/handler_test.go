// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests that need Valkey are skipped when it is
// unavailable; the remote document store is an in-memory fake.
package handlers

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"quickstor/internal/ai"
	"quickstor/internal/cache"
	"quickstor/internal/document"
	"quickstor/internal/live"
	"quickstor/internal/models"
	"quickstor/internal/publish"
	"quickstor/internal/render"
	"quickstor/internal/sitestore"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}
func (m *mockAIProvider) Chat(_ context.Context, _ string, _ []ai.Turn) (string, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test draft, page, and session keys.
		for _, pattern := range []string{"draft:*", "page:*", "session:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds the handler dependencies for integration tests.
type testEnv struct {
	Valkey    *redis.Client
	Remote    *document.MemoryStore
	Store     *sitestore.Store
	Publisher *publish.Publisher
	PageCache *cache.PageCache
	Hub       *live.Hub
	Admin     *Admin
	AdminAI   *AdminAI
	Public    *Public
}

// newTestEnv creates a complete editor test environment: in-memory remote
// document store, Valkey-backed draft and page caches, default site.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	vk := testValkeyClient(t)
	remote := document.NewMemoryStore()

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	drafts := cache.NewDraftCache(vk)
	publisher := publish.New(remote, drafts, "test")
	siteStore := sitestore.New(models.DefaultSite())
	pageCache := cache.NewPageCache(vk, 1*time.Minute)
	hub := live.NewHub()

	aiRegistry := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	aiRegistry.Register("test", &mockAIProvider{
		name:     "test",
		response: `{"html": "<section><h2>{{headline}}</h2></section>", "schema": [{"key": "headline", "label": "Headline", "type": "text"}], "defaultContent": {"headline": "Hello"}}`,
	})
	generator := ai.NewSectionGenerator(aiRegistry)

	admin := NewAdmin(siteStore, publisher, remote, pageCache, hub, renderer)
	adminAI := NewAdminAI(aiRegistry, generator)
	public := NewPublic(remote, renderer, pageCache, publisher.LiveID())

	return &testEnv{
		Valkey:    vk,
		Remote:    remote,
		Store:     siteStore,
		Publisher: publisher,
		PageCache: pageCache,
		Hub:       hub,
		Admin:     admin,
		AdminAI:   adminAI,
		Public:    public,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
