// Package classify resolves installed packages against the loaded modules
// into an immutable Snapshot.
//
// For every package, the entries of each module that name the package id
// and whose constraint matches the detected version are collected in load
// order. No match leaves the package Unknown. Otherwise the last-loaded
// module with a match wins: if its own matches carry one tag the package is
// Resolved with that tag, if they carry several the package is Ambiguous
// with all of them. Matches of earlier modules are kept in the provenance as
// agreeing (same tag as the winner) or overridden (different tag).
//
// Resolution is a pure function of the module list and the package list:
// the same inputs always produce the same snapshot and fingerprint.
package classify
