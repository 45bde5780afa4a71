package yui3

import (
	_ "embed"
)

// Version exposes the version of the library, embedded from version.txt so
// release tooling can bump it without touching Go source.
//
//go:embed version.txt
var Version string
