package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/status"
	"github.com/raphi011/gw/internal/ui/static"
)

func newStatusCmd() *cobra.Command {
	var (
		remote     bool
		base       string
		fullPath   bool
		withDiff   bool
		kinds      []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "List changed files grouped by kind",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List changed files grouped by kind.

Kinds are new, modified, deleted, renamed, copied and unmerged. Untracked
and ignored files are not listed.

With --remote, compares the current branch with the base branch instead of
reading the working tree.

With --diff, line counts of a local file come from its unstaged changes,
or from its staged changes when the working tree matches the index.`,
		Example: `  gw status                    # Working tree changes
  gw status --remote           # Current branch against default_base
  gw status --remote -b main   # Current branch against main
  gw status --diff             # Include added/removed line counts
  gw status -k new -k deleted  # Only some kinds`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			selected, err := parseKinds(kinds)
			if err != nil {
				return err
			}

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			if base == "" {
				base = r.cfg.DefaultBase
			}
			if !cmd.Flags().Changed("full-path") {
				fullPath = r.cfg.Status.FullPath
			}

			// Paths stay relative until the diff is merged, since diffs
			// are keyed by relative path.
			st, err := r.client.Status(ctx, git.StatusOptions{Remote: remote, Base: base})
			if err != nil {
				return err
			}

			if withDiff && !st.Empty() {
				opts := git.DiffOptions{IgnoreWhitespace: r.cfg.Diff.IgnoreWhitespace}
				if remote {
					current, err := r.client.Branches().Current(ctx)
					if err != nil {
						return err
					}
					opts.From, opts.To = current.Name, base
				}
				if !remote {
					// Staged changes first, so entries also changed in
					// the working tree end up with the working tree diff.
					staged := opts
					staged.Cached = true
					set, err := r.client.Diff(ctx, staged)
					if err != nil {
						return err
					}
					status.Merge(st, set)
				}
				set, err := r.client.Diff(ctx, opts)
				if err != nil {
					return err
				}
				status.Merge(st, set)
			}

			if fullPath {
				st = st.WithPrefix(strings.TrimSuffix(r.client.Dir(), "/") + "/")
			}
			st = filterKinds(st, selected)

			if jsonOutput {
				return out.JSON(newStatusJSON(st))
			}
			if st.Empty() {
				l.Println("No changes")
				return nil
			}
			out.Print(static.RenderTable(static.StatusHeaders, static.StatusRows(st)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Compare the current branch with the base branch")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base branch for --remote (default from default_base)")
	cmd.Flags().BoolVar(&fullPath, "full-path", false, "Prefix paths with the directory (default from status.full_path)")
	cmd.Flags().BoolVarP(&withDiff, "diff", "d", false, "Include added and removed line counts")
	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "Only show these kinds (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.RegisterFlagCompletionFunc("base", completeBranches)
	cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, k := range status.Kinds() {
			names = append(names, k.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func parseKinds(names []string) ([]status.Kind, error) {
	var kinds []status.Kind
	for _, n := range names {
		k, err := status.ParseKind(strings.ToLower(strings.TrimSpace(n)))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// filterKinds keeps only the selected kinds. No selection keeps all.
func filterKinds(st *status.Status, kinds []status.Kind) *status.Status {
	if len(kinds) == 0 {
		return st
	}
	out := status.NewStatus()
	seen := make(map[status.Kind]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		for _, e := range st.Get(k) {
			out.Add(k, e.Path, e.Diff)
		}
	}
	return out
}
