// Package hooks runs user-defined shell commands after gw commands.
//
// Hooks live in the config as [hooks.NAME] tables:
//
//	[hooks.test]
//	command = "go test ./..."
//	on = ["pull", "switch"]
//
//	[hooks.announce]
//	command = "notify-send {branch:raw} pushed"
//	# no "on": only runs via "gw hook announce"
//
// # Selection
//
// Hooks whose "on" list contains the trigger (or "all") run automatically
// once the command succeeded. --no-hook skips them and "gw hook NAME" runs
// one explicitly regardless of "on".
//
// # Placeholders
//
//   - {root}: repository top-level directory
//   - {branch}: current branch
//   - {repo}: base name of the repository directory
//   - {trigger}: command that triggered the hook
//
// Values from --arg key=value are available as {key}, {key:-default} and,
// unquoted, {key:raw}. All other values are shell-quoted.
//
// Hooks run via "sh -c" in the repository root. Automatic hooks only warn
// on failure; [Run] stops at the first failing hook.
package hooks
