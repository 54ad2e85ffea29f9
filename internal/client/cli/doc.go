// Package cli provides the interactive journal command-line client.
//
// It wires configuration, the on-disk entry store, the client database, the
// sync engine and an interactive REPL. Typical flow: resolve the access token
// (flag, environment or prompt), start a background connectivity watcher and,
// when enabled, the auto-sync watcher, then execute user commands.
//
// Key features:
//   - Add daily or timestamped entries, optionally with an image
//   - Browse entries by year, month and day
//   - Sync with the server and review the last run
//   - Ask a language model for a reflection on an entry
//   - Export a month of entries to HTML
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
