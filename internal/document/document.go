// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package document provides the shared document store the editor publishes
// through and the public site renders from. Documents are opaque JSON
// records addressed by (collection, id); two are used per environment:
// sites/<env>-staging and sites/<env>-live.
package document

import (
	"context"
	"encoding/json"
)

// SitesCollection is the collection holding the staging and live site
// documents.
const SitesCollection = "sites"

// StagingID returns the staging document id for an environment.
func StagingID(env string) string { return env + "-staging" }

// LiveID returns the live document id for an environment.
func LiveID(env string) string { return env + "-live" }

// Store is the remote document store contract. Documents are read and
// written wholesale; there are no field-level transactions.
type Store interface {
	// Get returns the document, or (nil, nil) when it does not exist.
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)

	// Set writes the document wholesale, creating it if absent.
	Set(ctx context.Context, collection, id string, doc json.RawMessage) error

	// Subscribe registers fn to receive the full document after every
	// change. Delivery is asynchronous and may race with local edits;
	// the last write wins. The returned function stops the subscription.
	Subscribe(ctx context.Context, collection, id string, fn func(json.RawMessage)) (func(), error)
}
