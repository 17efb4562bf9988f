// Package types defines the core types shared across lodestone: the
// filesystem capability every component is handed, installed packages
// discovered by the scanner, and classification tags.
package types
