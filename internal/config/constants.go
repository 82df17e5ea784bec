package config

// Base application details
const AppName = "tidecore"
const DefaultConfigFileName = "config.toml"

// Editing defaults
const DefaultHistoryCapacity = 100
const DefaultPageSize = 20
const SystemClipboard = false

// Fallback advances when the renderer has not supplied font metrics.
// Narrow is half of wide.
const DefaultWideAdvance = 16.0
const DefaultNarrowAdvance = DefaultWideAdvance / 2
