// Package storage contains concrete implementations of core.Storage.
//
// The canonical Storage interface lives in the core package to keep domain
// contracts central. Implementations here (in-memory, local files) and in
// sub-packages (s3) provide durable key/value backends that can be swapped
// without touching calling code.
//
// Callers should depend on core.Storage rather than concrete types so they can
// substitute alternative persistence layers in tests or production.
package storage
