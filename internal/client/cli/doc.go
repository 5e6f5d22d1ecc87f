// Package cli provides the interactive EventSync command-line client.
//
// It wires configuration, local storage, the API client and the auth
// services, restores the previous session, and runs a REPL whose commands
// open screens addressed by route paths (/login, /calendar, ...).
//
// Screens that need a session are wrapped by the route guard; operations
// return navigation intents and the screen loop applies them. A 401 from a
// protected API call clears the session and forces a reload at /login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, navigate and runREPL for details.
package cli
