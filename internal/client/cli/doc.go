// Package cli provides the interactive Lightway command-line client.
//
// It wires configuration, the local ledger, API services and a REPL. A
// background watcher pings the server and shows online/offline status in
// the prompt.
//
// Commands:
//   - seal / void / open / openable / mine: time-locked letters
//   - identity [new] / post [--image path] / gallery / applaud: the facade
//     gallery
//
// The REPL is started via App.Root(ctx), which blocks until the user exits
// or input ends. See runREPL for the dispatch table.
package cli
