// Package migrations — goose-миграции схемы истории выполнений.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
