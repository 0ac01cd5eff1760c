// Package app provides the orchestration layer for the quay application.
//
// # Overview
//
// This package wires together configuration, the dataset source, polling,
// state management and the renderers. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load configuration from ~/.config/quay/config.toml and apply CLI overrides
//  2. Route the standard logger to log_file, or discard it
//  3. Load user preferences (theme, last screen)
//  4. Read the dataset once; a failure here aborts startup
//  5. Launch the background poller that reloads the dataset on change
//  6. Start the configured renderer and block until the user exits
//
// # Components
//
//   - app.go: Run, CLI overrides and log setup
//   - poller.go: background goroutine reloading the dataset when its file changes
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read quay config
//	       ├─────> applyOverrides()     CLI flags win
//	       ├─────> dataset.Source       JWCC file or embedded sample
//	       ├─────> state.Store{}        Shared state container
//	       ├─────> StartPoller()        Launch background reloads
//	       └─────> ui.Run()             Bubble Tea renderer (blocks)
//	               classic.Run()        or tview renderer
//
// # Polling Behavior
//
// The poller stats the dataset file on every tick and reloads it only when
// the modification time moved. Failed reloads keep the previous data in the
// store, record the error and back off exponentially up to 30 seconds. The
// embedded sample never changes.
//
// The UI reads snapshots from the store at its own refresh rate and pushes
// records into its tables only when the dataset version changed, so sort,
// search and selection survive idle ticks.
package app
