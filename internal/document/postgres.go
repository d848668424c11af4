// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// PostgresStore persists documents as JSONB rows and fans change
// notifications out through Valkey pub/sub, so every server instance sees
// a publish regardless of which instance performed it.
type PostgresStore struct {
	db     *sql.DB
	valkey *redis.Client
}

// NewPostgresStore creates a document store over the given database and
// Valkey client. The Valkey client may be nil, in which case Subscribe is
// unavailable (single-instance deployments reading on demand still work).
func NewPostgresStore(db *sql.DB, valkey *redis.Client) *PostgresStore {
	return &PostgresStore{db: db, valkey: valkey}
}

// channel names the pub/sub channel announcing changes to one document.
func channel(collection, id string) string {
	return "doc:" + collection + ":" + id
}

// Get returns the stored payload, or (nil, nil) when the document is absent.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM documents
		WHERE collection = $1 AND doc_id = $2
	`, collection, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return payload, nil
}

// Set upserts the document and announces the change on the pub/sub channel.
// The announcement is best-effort: a failed publish does not fail the write.
func (s *PostgresStore) Set(ctx context.Context, collection, id string, doc json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, doc_id, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, collection, id, []byte(doc))
	if err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}

	if s.valkey != nil {
		if err := s.valkey.Publish(ctx, channel(collection, id), "changed").Err(); err != nil {
			slog.Warn("document change publish failed", "collection", collection, "id", id, "error", err)
		}
	}
	return nil
}

// Subscribe listens on the document's pub/sub channel and re-reads the
// document on every announcement, invoking fn with the fresh payload.
func (s *PostgresStore) Subscribe(ctx context.Context, collection, id string, fn func(json.RawMessage)) (func(), error) {
	if s.valkey == nil {
		return nil, fmt.Errorf("subscribe %s/%s: no valkey client configured", collection, id)
	}

	sub := s.valkey.Subscribe(ctx, channel(collection, id))

	// Force the subscription to be established before returning, so a
	// write immediately after Subscribe is not missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s/%s: %w", collection, id, err)
	}

	go func() {
		for range sub.Channel() {
			doc, err := s.Get(ctx, collection, id)
			if err != nil {
				slog.Warn("document re-read after change failed", "collection", collection, "id", id, "error", err)
				continue
			}
			if doc != nil {
				fn(doc)
			}
		}
	}()

	return func() { sub.Close() }, nil
}
