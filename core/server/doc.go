// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure (port, API key) that the
// core/config package embeds and the start command consumes.
package server
