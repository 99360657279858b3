// Package testutil contains helpers used across tests to reduce boilerplate:
// a fake GraphQL endpoint that records requests and replies with canned
// bodies, and a builder for session data. They are not intended for
// production usage.
package testutil
