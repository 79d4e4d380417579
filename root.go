// Package root exposes assets embedded at the repository root, such as
// database migrations consumed by the migrate command.
package root

import "embed"

// Migrations contains the goose SQL migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
