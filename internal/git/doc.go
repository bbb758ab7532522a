// Package git drives the git binary as a subprocess and turns its output
// into structured values.
//
// Every operation goes through a [Runner], [ExecRunner] by default, which
// runs git with "-C <dir>" and an argv slice. No shell strings are built.
// Stderr is folded into returned errors, and every finished command is
// recorded on the client's [Response].
//
// # Client
//
// A [Client] is bound to one working directory:
//
//	c, err := git.New(ctx, dir)
//	set, err := c.Diff(ctx, git.DiffOptions{From: "HEAD~1", To: "HEAD"})
//
// [New] checks that the directory is readable, resolves the binary and
// probes "git --version" before any other command runs.
//
// # Operations
//
//   - [Client.Add], [Client.Reset], [Client.Commit]: index and history
//   - [Client.Diff], [Client.DiffNameStatus]: structured and raw comparisons
//   - [Client.Status]: local or remote status listings
//   - [Client.Pull], [Client.Push]: remote synchronisation
//   - [Client.Config]: the "git config --list" tree
//
// # Branches
//
// [Branches] keeps the parsed "git branch" listing in an explicit cache
// field. [Branches.List] serves from the cache, [Branches.Refresh] reloads
// it and [Branches.Invalidate] drops it. Commands that change branches
// invalidate the cache themselves.
package git
