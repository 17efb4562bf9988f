// Package scanner discovers installed mod files in a directory and reads the
// identity (id and version) each one declares in its embedded metadata.
//
// Only the top level of the directory is scanned. Files are selected by
// extension and may be excluded through an ignore file (default
// ".lodestoneignore") holding one file name or glob per line.
//
// Metadata is read by extractors, tried in registration order:
//
//	fabric     fabric.mod.json
//	quilt      quilt.mod.json
//	neoforge   META-INF/neoforge.mods.toml
//	forge      META-INF/mods.toml
//	mcmod      mcmod.info
//	maven      META-INF/maven/**/pom.xml
//
// The first extractor that finds an identity wins. A file that is not a
// readable archive, or that no extractor understands, still yields a package:
// its id is derived from the file name and its version is
// types.UnparsableVersion.
package scanner
