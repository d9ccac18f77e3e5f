// Package http implements the REST transport of the health keeper server.
//
// It exposes route wiring, request handlers, and middleware. Request
// tracing, access logging, compression and bearer authentication happen
// here before requests reach the service layer. Record fields arrive
// already encrypted by the client and are stored as given; the audit route
// only accepts appends.
package http
