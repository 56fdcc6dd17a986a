// Package cli provides the interactive Blood Connect command-line client.
//
// It wires configuration, the credential store, the session manager and the
// donor/contact services into a REPL whose commands mirror the pages of the
// web client: home, signup/login, find and register donors, about and the
// contact form. Unknown commands show the Not Found page.
//
// The REPL is started via App.Run(ctx), which installs the session provider
// on ctx, restores any saved session and blocks until the user exits.
package cli
