// Package config handles loading and validation of gw configuration.
//
// Configuration is read from ~/.config/gw/config.toml, or from the file
// named by the GW_CONFIG environment variable.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags
//   - .gw.toml at the repository root
//   - The global config file
//   - Default values
//
// # Key Settings
//
//   - git_binary: git executable to drive (default: "git" from PATH)
//   - default_remote: remote for pull/push (default: "origin")
//   - default_base: comparison target for diff/status (default: "master")
//   - diff.ignore_whitespace, diff.word_diff: diff rendering
//   - status.full_path: prefix status paths with the repository directory
//   - ui.theme: "default", "dracula" or "nord"
//
// Only default_remote, default_base, [diff] and [status] may appear in a
// .gw.toml file. A [ConfigResolver] caches the merged result per
// repository.
package config
