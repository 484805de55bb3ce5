// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and the port resolution rule for the broker.
//
// # Port Resolution
//
// The listen port is resolved once at startup: a bare PORT environment variable
// (the PaaS convention) overrides the configured port, and the default of 5000
// applies when neither is set. ResolvePort encapsulates this so the rest of the
// application receives an explicit value instead of reading the environment.
package server
