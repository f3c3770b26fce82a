// Package config provides the cmdhistory configuration.
//
// Settings come from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CMDHISTORY_HISTORY_MAX_SIZE, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← cmdhistory.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A missing config file is not an error. The merged result is decoded into
// a typed Config and validated before use.
//
// Example file:
//
//	[history]
//	maxSize = 50
//
//	[logging]
//	level = "debug"
//	pretty = true
//
//	[scope]
//	strict = false
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
package config
