// Package testutil provides fixtures for testing lodestone components.
//
// Key components:
//   - BuildJar / FabricJar: in-memory mod archives with embedded metadata
//   - ModuleJSON / EntryJSON: module documents in the on-disk format
//   - Isolate: points every lodestone directory at a temp dir
//
// All test data is defined inline; nothing is read from testdata files.
package testutil
