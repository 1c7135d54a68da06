// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

/*
Package store implements the client-facing synchronization core: the
in-memory, queryable, time-ordered state behind the map and timeline
views.

Three independent stores consume the live feeds:

  - MessageStore: inversely time-sorted message sequence with
    upsert-by-id semantics and binary-search ordered insertion.
  - TrackStore: per-subject append-only GPS sample sequences.
  - EntityStore: last-write-wins subject profiles.

Each store serializes its own mutations and emits a "new data" event
after every ingest, carrying exactly the newly processed records. The
Enricher cross-references a message without a coordinate against the
entity and track stores at ingestion time.

# Ordering and trust

The message store maintains its sort invariant on every insert; input
order does not matter. The track store, by contrast, trusts the
transport layer: batches are appended verbatim, assumed time-ordered
and duplicate-free within a batch. That asymmetry is deliberate - the
track feed is a trusted periodic GPS ping source, the message feed is
a live-editable stream that arrives out of order.

# Reentrancy

Event emission is a synchronous fan-out run after the mutation
completes. Subscribers must not call back into the emitting store
from the callback; views that need to mutate in response should do so
from their own task.
*/
package store
