// Package sse serves pagination buffer snapshots to browsers over
// Server-Sent Events.
//
// A Hub fans each published snapshot out to every connected client and
// replays the latest snapshot to clients as they connect. Bind drains a
// pager's snapshot stream into a hub:
//
//	hub := sse.NewHub()
//	go sse.Bind(ctx, hub, pager.Apply(requests))
//	http.Handle("/feed", hub.Handler())
//
// Placeholder slots are encoded as JSON null, so a padded snapshot arrives
// as e.g. [null, null] before the first page of data.
package sse
