package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/history"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/prompt"
	"github.com/raphi011/gw/internal/ui/static"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branch",
		Short:   "List and manage local branches",
		Aliases: []string{"br"},
		GroupID: GroupBranch,
		Args:    cobra.NoArgs,
		Long: `List and manage local branches.

Without a subcommand, lists the local branches and marks the current one.
Branch names may only contain a-z, 0-9, '-', '_' and '.'.`,
		Example: `  gw branch                    # List branches
  gw branch create fix-parser  # Create and switch
  gw branch switch parser      # Fuzzy switch
  gw branch switch -           # Back to the previous branch
  gw branch recent             # Recently used branches
  gw branch rename fix-lexer   # Rename the current branch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBranches(cmd)
		},
	}

	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchCurrentCmd())
	cmd.AddCommand(newBranchCreateCmd())
	cmd.AddCommand(newBranchSwitchCmd())
	cmd.AddCommand(newBranchRenameCmd())
	cmd.AddCommand(newBranchRecentCmd())

	return cmd
}

func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List local branches",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBranches(cmd)
		},
	}
}

func listBranches(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	r, err := openRepo(ctx)
	if err != nil {
		return err
	}
	branches, err := r.client.Branches().List(ctx)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		log.FromContext(ctx).Println("No branches yet")
		return nil
	}

	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, static.BranchTableRow(b))
	}
	out.Print(static.RenderTable(static.BranchHeaders, rows))
	return nil
}

func newBranchCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			current, err := r.client.Branches().Current(ctx)
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(current.Name)
			return nil
		},
	}
}

func newBranchCreateCmd() *cobra.Command {
	var (
		noSwitch bool
		noHook   bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a branch at HEAD and switch to it",
		Args:  cobra.ExactArgs(1),
		Long: `Create a branch at HEAD and switch to it.

An existing branch is not recreated; gw only switches to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			branches := r.client.Branches()
			from := currentBranchName(ctx, branches)
			if err := branches.Create(ctx, args[0], !noSwitch); err != nil {
				return err
			}
			if noSwitch {
				log.FromContext(ctx).Printf("Created branch %s\n", args[0])
				return nil
			}
			recordSwitch(ctx, r, from, args[0])
			log.FromContext(ctx).Printf("Switched to branch %s\n", args[0])
			runAutoHooks(ctx, r, hooks.TriggerSwitch, noHook)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSwitch, "no-switch", false, "Only create the branch")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip switch hooks")

	return cmd
}

func newBranchSwitchCmd() *cobra.Command {
	var noHook bool

	cmd := &cobra.Command{
		Use:     "switch [<query>]",
		Short:   "Switch to a branch matched fuzzily",
		Aliases: []string{"sw"},
		Args:    cobra.MaximumNArgs(1),
		Long: `Switch to a branch.

The query is matched fuzzily against local branch names and the best match
wins. An exact name always wins. "-" switches to the branch used before the
current one. Without a query, a picker listing recently used branches first
is shown in a terminal.`,
		Example: `  gw branch switch main   # Exact name
  gw branch switch prs    # Fuzzy: matches "parser"
  gw branch switch -      # Previous branch
  gw branch switch        # Pick from a list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			branches := r.client.Branches()
			from := currentBranchName(ctx, branches)

			var name string
			switch {
			case len(args) == 0:
				name, err = pickBranch(ctx, r)
				if err != nil || name == "" {
					return err
				}
			case args[0] == "-":
				name, err = previousBranch(ctx, r, from)
				if err != nil {
					return err
				}
			default:
				name, err = resolveBranch(ctx, branches, args[0])
				if err != nil {
					return err
				}
			}

			if err := branches.Switch(ctx, name); err != nil {
				return err
			}
			recordSwitch(ctx, r, from, name)
			log.FromContext(ctx).Printf("Switched to branch %s\n", name)
			runAutoHooks(ctx, r, hooks.TriggerSwitch, noHook)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip switch hooks")
	cmd.ValidArgsFunction = completeBranches

	return cmd
}

func newBranchRenameCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "rename <new-name>",
		Short: "Rename a branch",
		Args:  cobra.ExactArgs(1),
		Long: `Rename a branch. Renames the current branch unless --from is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			branches := r.client.Branches()
			old := from
			if old == "" {
				old = currentBranchName(ctx, branches)
			}
			if err := branches.Rename(ctx, args[0], from); err != nil {
				return err
			}
			if old != "" {
				if err := history.RecordRename(r.root, old, args[0], historyPathFromContext(ctx)); err != nil {
					log.FromContext(ctx).Warnf("failed to update branch history: %v", err)
				}
			}
			log.FromContext(ctx).Printf("Renamed branch to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Branch to rename (default: current branch)")
	cmd.RegisterFlagCompletionFunc("from", completeBranches)

	return cmd
}

// resolveBranch returns query itself when it names a branch, the best
// fuzzy match otherwise.
func resolveBranch(ctx context.Context, branches *git.Branches, query string) (string, error) {
	exists, err := branches.Exists(ctx, query)
	if err != nil {
		return "", err
	}
	if exists {
		return query, nil
	}
	matches, err := branches.Match(ctx, query)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no branch matches %q", query)
	}
	if len(matches) > 1 {
		log.FromContext(ctx).Printf("%q matched %d branches, using %s\n", query, len(matches), matches[0].Name)
	}
	return matches[0].Name, nil
}

// currentBranchName returns the checked out branch, or "" on a detached
// HEAD or an unborn repository.
func currentBranchName(ctx context.Context, branches *git.Branches) string {
	current, err := branches.Current(ctx)
	if err != nil {
		return ""
	}
	return current.Name
}

// previousBranch looks up the branch used before current.
func previousBranch(ctx context.Context, r *repo, current string) (string, error) {
	h, err := history.Load(historyPathFromContext(ctx))
	if err != nil {
		return "", fmt.Errorf("load branch history: %w", err)
	}
	for _, e := range h.ForRepo(r.root) {
		if e.Branch == current {
			continue
		}
		exists, err := r.client.Branches().Exists(ctx, e.Branch)
		if err != nil {
			return "", err
		}
		if exists {
			return e.Branch, nil
		}
	}
	return "", fmt.Errorf("no previous branch recorded")
}

// recentFirst orders names so that branches from the history come first,
// most recent first, followed by the rest in their original order.
func recentFirst(names []string, recent []history.Entry) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, e := range recent {
		if known[e.Branch] && !seen[e.Branch] {
			out = append(out, e.Branch)
			seen[e.Branch] = true
		}
	}
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}

// pickBranch shows a selection prompt. An empty name means the user
// cancelled.
func pickBranch(ctx context.Context, r *repo) (string, error) {
	if !interactive() {
		return "", fmt.Errorf("a branch name is required when not running in a terminal")
	}
	list, err := r.client.Branches().List(ctx)
	if err != nil {
		return "", err
	}
	var names []string
	for _, b := range list {
		if !b.Current && !b.Detached {
			names = append(names, b.Name)
		}
	}
	if len(names) == 0 {
		log.FromContext(ctx).Println("No other branches")
		return "", nil
	}
	if h, err := history.Load(historyPathFromContext(ctx)); err == nil {
		names = recentFirst(names, h.ForRepo(r.root))
	}
	res, err := prompt.Select("Switch to", names)
	if err != nil || res.Cancelled {
		return "", err
	}
	return res.Value, nil
}

var recentHeaders = []string{"BRANCH", "SWITCHES", "LAST USED"}

func newBranchRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used branches of this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			h, err := history.Load(historyPathFromContext(ctx))
			if err != nil {
				return fmt.Errorf("load branch history: %w", err)
			}
			entries := h.ForRepo(r.root)
			if len(entries) == 0 {
				log.FromContext(ctx).Println("No branch history yet")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			output.FromContext(ctx).Print(static.RenderTable(recentHeaders, recentRows(entries, time.Now())))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of branches to show (0 for all)")

	return cmd
}

func recentRows(entries []history.Entry, now time.Time) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Branch, fmt.Sprint(e.AccessCount), ago(now.Sub(e.LastAccess))})
	}
	return rows
}

// ago formats d coarsely, e.g. "5m ago".
func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
