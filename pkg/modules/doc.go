// Package modules parses, validates and holds the community rule sets
// ("modules") that classify mods.
//
// # File format
//
//	{
//	  "header": { "moduleName": "default", "moduleVersion": 3, "moduleAuthor": "someone" },
//	  "mods": [
//	    { "modID": "sodium", "modVersion": "*", "modType": "Client" },
//	    { "modID": "create", "modVersion": "[0.5,0.6)", "modType": "Both" }
//	  ]
//	}
//
// modVersion uses the constraint syntax of package version. modType is a
// tag; Client, Server and Both are conventional but any other name is a
// custom tag. "Unknown" is reserved.
//
// # Validation
//
// A module is checked against an embedded JSON schema, then its header
// (non-empty name, version >= 1), then every entry (constraint syntax, tag,
// package id). Two entries for the same package id whose constraints share a
// version are rejected as overlapping. A module that fails any check is
// rejected whole and the Store is left unchanged.
//
// # Load order
//
// The Store keeps modules in load order. Load order is the precedence used
// by the classifier: later modules override earlier ones.
package modules
