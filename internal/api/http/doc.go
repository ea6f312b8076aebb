// Package http implements the REST API handlers.
//
// Endpoints cover service discovery and tool execution, session
// lifecycle, and a JSON metrics summary. Tool execution resolves the
// caller's session to a working directory before dispatching to the
// service registry.
package http
