// Package cli provides the interactive featurevote command-line client.
//
// It wires configuration, the local session store, the query cache, the
// REST client and the services, then runs a REPL in place of the web and
// mobile screens. Typical flow: resume a stored session if any, start a
// background health watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Paged feature listing (list, next, prev) and detail (show)
//   - Create features, vote and remove votes
//
// Every write goes through a Mutation tracker whose last state is shown in
// the prompt. A 401 from any command returns the user to the guest state.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
