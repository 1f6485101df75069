// Package ctwatch holds assets shared by every binary in the module.
package ctwatch

import "embed"

// Migrations contains the goose migrations for every supported SQL dialect,
// one directory per dialect under migrations/.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
