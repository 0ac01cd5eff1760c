// Package state provides thread-safe sharing of the loaded dataset between
// the reload poller and the UI.
//
// # Architecture
//
//	Producer (poller):              Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ source.Load()    │            │ tick             │
//	│      ↓           │            │      ↓           │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	│      ↓           │  (mutex)   │      ↓           │
//	│ wait / backoff   │            │ table.SetRecords │
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
// A successful Update replaces the dataset, clears LastError, resets the
// failure counter and bumps Version. A failed Update keeps the previous
// dataset and only records the error:
//
//	store.Update(ds, nil)   → Data = ds, Version++, LastError = nil
//	store.Update(nil, err)  → Data unchanged, LastError = err, failures++
//
// The UI compares Version against the last one it rendered and only pushes
// records into its tables when the dataset actually changed, so sort, query
// and cursor state survive idle ticks untouched.
//
// # Copying
//
// Update and Snapshot both clone the record slices. Neither the caller's
// dataset nor a returned snapshot aliases the stored one.
//
// The zero Store is ready to use.
package state
