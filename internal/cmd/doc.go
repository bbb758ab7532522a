// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failures carry the trimmed stderr of the process so users see git's own
// message instead of a bare "exit status 128".
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "reset"); err != nil {
//	    return fmt.Errorf("reset failed: %w", err)
//	}
//
//	// Both streams, stderr kept even on success:
//	res, err := cmd.Capture(ctx, dir, "git", "push", "origin", "main")
//
// Every *Context helper echoes the command through the context logger when
// verbose mode is on.
package cmd
