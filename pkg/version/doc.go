// Package version decides whether a mod version satisfies a module rule.
//
// # Constraint syntax
//
//   - `*` - any version, including versions that cannot be parsed
//   - `[1.0,2.0)` - interval, `[`/`]` inclusive and `(`/`)` exclusive
//   - `[1.0,)` / `(,2.0]` - interval open on one side
//   - `[1.2]` - interval holding a single version
//   - anything else - exact version
//
// Intervals use the Maven notation Forge already uses for dependency ranges
// in mods.toml.
//
// # Ordering
//
// Versions compare by their dotted numeric core, missing components count as
// zero (`1.2` == `1.2.0` < `1.2.1`). Whatever follows the core is a suffix,
// compared lexicographically once the cores are equal; a bare core sorts
// before the same core with a suffix. A version without a numeric core has no
// place in the ordering and never satisfies an interval.
//
// Constraints are validated by Parse when a module is loaded; matching never
// fails.
package version
