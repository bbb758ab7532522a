package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/static"
)

var hookHeaders = []string{"NAME", "ON", "COMMAND", "DESCRIPTION"}

func newHookCmd() *cobra.Command {
	var (
		env    []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:               "hook [<name>...]",
		Short:             "Run or list configured hooks",
		GroupID:           GroupUtility,
		ValidArgsFunction: completeHooks,
		Long: `Run one or more configured hooks in the repository root.

Without a name, lists the hooks configured for this repository, including
those from .gw.toml. Explicitly run hooks ignore their "on" list.`,
		Example: `  gw hook                      # List hooks
  gw hook test                 # Run the 'test' hook
  gw hook notify -a msg=done   # Set {msg}
  gw hook test -d              # Print the command without running it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return listHooks(ctx, r)
			}

			hookEnv, err := hooks.ParseEnv(env)
			if err != nil {
				return err
			}

			var matches []hooks.Match
			for _, name := range args {
				m, err := hooks.Select(r.cfg.Hooks, name, false, hooks.TriggerManual)
				if err != nil {
					return unknownHookError(err, r)
				}
				matches = append(matches, m...)
			}

			hc := hookContext(ctx, r, hooks.TriggerManual)
			hc.Env = hookEnv
			hc.DryRun = dryRun
			return hooks.Run(ctx, matches, hc, output.FromContext(ctx).Writer())
		},
	}

	cmd.Flags().StringArrayVarP(&env, "arg", "a", nil, "Set hook variable KEY=VALUE (repeatable)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print commands without executing")
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)

	return cmd
}

func listHooks(ctx context.Context, r *repo) error {
	names := hooks.Names(r.cfg.Hooks)
	if len(names) == 0 {
		log.FromContext(ctx).Println("No hooks configured")
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		h := r.cfg.Hooks[name]
		rows = append(rows, []string{name, strings.Join(h.On, ","), h.Command, h.Description})
	}
	output.FromContext(ctx).Print(static.RenderTable(hookHeaders, rows))
	return nil
}

func unknownHookError(err error, r *repo) error {
	available := hooks.Names(r.cfg.Hooks)
	if len(available) == 0 {
		return fmt.Errorf("%w (no hooks configured)", err)
	}
	return fmt.Errorf("%w (available: %s)", err, strings.Join(available, ", "))
}

// hookContext fills the placeholder values for the repository.
func hookContext(ctx context.Context, r *repo, trigger hooks.Trigger) hooks.Context {
	return hooks.Context{
		Root:    r.root,
		Branch:  currentBranchName(ctx, r.client.Branches()),
		Trigger: trigger,
	}
}

// runAutoHooks runs the hooks whose "on" list matches trigger. Failures
// only warn since the command itself already succeeded.
func runAutoHooks(ctx context.Context, r *repo, trigger hooks.Trigger, noHook bool) {
	matches, err := hooks.Select(r.cfg.Hooks, "", noHook, trigger)
	if err != nil || len(matches) == 0 {
		return
	}
	hooks.RunNonFatal(ctx, matches, hookContext(ctx, r, trigger), output.FromContext(ctx).Writer())
}

// completeHooks completes the configured hook names not given yet.
func completeHooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	r, err := openRepo(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, name := range hooks.Names(r.cfg.Hooks) {
		if strings.HasPrefix(name, toComplete) && !slices.Contains(args, name) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
