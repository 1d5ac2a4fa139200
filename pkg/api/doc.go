// Package api defines the tripsplit.v1 wire messages.
//
// Messages are plain Go structs encoded as JSON by Codec. Field names are
// lowerCamelCase and timestamps are RFC 3339. Handlers and clients for the
// four services live in package apiconnect.
package api
