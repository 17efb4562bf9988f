// Package registry provides a generic, thread-safe registry that keeps
// registration order. lodestone uses it for the metadata extractors the
// scanner tries, in order, on every mod file.
package registry
