// Package prompt provides simple interactive prompts.
//
// Prompts render on stderr so stdout stays clean for piping.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with optional validation
//   - [Select]: Single selection from a filterable list
package prompt
