// Package core provides the foundational domain types and interfaces shared by
// the strapikit packages. It defines:
//
//   - Application state records (User, Post, SessionData, Session)
//   - Storage, the durable key/value contract used to persist sessions
//   - Notifier, the user-facing notification capability used to surface
//     GraphQL error messages
//
// Implementation concerns (HTTP transport, slot registries, concrete storage
// backends) live in sibling packages so callers can depend on these small
// contracts and substitute their own backends in tests or production.
package core
