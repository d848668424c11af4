// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// draft.go provides the editor's durable draft cache. Every save writes
// the working aggregate here field by field before touching the remote
// staging document, so a network failure never leaves the operator without
// a durable copy of their edits. Keys have no TTL.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Draft cache keys, one per top-level aggregate field.
const (
	DraftKeyNavbar         = "navbar"
	DraftKeyFooter         = "footer"
	DraftKeyPages          = "pages"
	DraftKeyActiveTheme    = "active-theme"
	DraftKeySavedThemes    = "saved-themes"
	DraftKeyCustomSections = "custom-sections"
)

// draftKeyPrefix namespaces draft keys in Valkey.
const draftKeyPrefix = "draft:"

// DraftCache stores JSON-serialized aggregate fields durably.
type DraftCache struct {
	client *redis.Client
}

// NewDraftCache creates a draft cache backed by the given Valkey client.
func NewDraftCache(client *redis.Client) *DraftCache {
	return &DraftCache{client: client}
}

// Get returns the stored value for a key. ok is false when the key is
// absent, which callers treat as "initialize from built-in defaults".
func (c *DraftCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, draftKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("draft cache get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores a value under a key with no expiry.
func (c *DraftCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, draftKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("draft cache set %s: %w", key, err)
	}
	return nil
}
