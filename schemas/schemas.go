// Package schemas holds the JSON Schemas for files the service reads and
// writes, embedded so validation needs no filesystem lookups.
package schemas

import _ "embed"

// ConfigSchema validates config.json files loaded by the CLI and server.
//
//go:embed config.schema.json
var ConfigSchema string

// StageCatalogSchema validates the embedded stage prompt template catalog.
//
//go:embed stage_catalog.schema.json
var StageCatalogSchema string
