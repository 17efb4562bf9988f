// Package filesystem provides the types.FS implementations lodestone
// runs on: the operating system's filesystem and an in-memory one. Both
// are afero filesystems underneath.
package filesystem
