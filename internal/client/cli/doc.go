// Package cli provides the interactive task command-line client.
//
// It wires configuration, the local session store, the HTTP API client, and
// an interactive REPL. Typical flow: restore a saved session (if any), start
// a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Add, list, show, edit, toggle, and delete tasks
//   - Transparent token refresh: an expired access token is renewed
//     mid-command without the user noticing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
