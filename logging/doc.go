// Package logging provides a minimal logging interface and adapters for strapikit.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the GraphQL client, the state store and the CLI use for diagnostics. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - KitLogger with component/request context and a request outcome helper
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	client := graphql.NewClient(graphql.WithLogger(logger.WithComponent("graphql")))
package logging
