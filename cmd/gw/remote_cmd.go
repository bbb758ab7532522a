package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/ui/progress"
	"github.com/raphi011/gw/internal/ui/prompt"
)

func newPullCmd() *cobra.Command {
	var noHook bool

	cmd := &cobra.Command{
		Use:     "pull [<remote> [<branch>]]",
		Short:   "Fetch and merge a branch",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(2),
		Long: `Fetch and merge a branch from a remote.

The remote defaults to default_remote from the config, the branch to the
current branch.`,
		Example: `  gw pull                # Current branch from the default remote
  gw pull upstream main  # main from upstream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			remote, branch := remoteArgs(args, r.cfg.DefaultRemote)

			err = progress.Run(fmt.Sprintf("Pulling from %s", remote), !l.Quiet(), func() error {
				return r.client.Pull(ctx, remote, branch)
			})
			if err != nil {
				return err
			}
			if msg := r.client.Response().LastMessage(); msg != "" {
				l.Println(msg)
			}
			runAutoHooks(ctx, r, hooks.TriggerPull, noHook)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip pull hooks")
	cmd.ValidArgsFunction = completeRemoteThenBranch

	return cmd
}

func newPushCmd() *cobra.Command {
	var (
		yes    bool
		noHook bool
	)

	cmd := &cobra.Command{
		Use:     "push [<remote> [<branch>]]",
		Short:   "Push a branch",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(2),
		Long: `Push a branch to a remote.

The remote defaults to default_remote from the config, the branch to the
current branch. Pushing the default base branch asks for confirmation in a
terminal, unless --yes is given.`,
		Example: `  gw push                 # Current branch to the default remote
  gw push origin feature  # feature to origin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			remote, branch := remoteArgs(args, r.cfg.DefaultRemote)

			target := branch
			if target == "" {
				current, err := r.client.Branches().Current(ctx)
				if err != nil {
					return err
				}
				target = current.Name
			}

			if target == r.cfg.DefaultBase && !yes && interactive() {
				res, err := prompt.Confirm(fmt.Sprintf("Push directly to %s/%s?", remote, target))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			err = progress.Run(fmt.Sprintf("Pushing %s to %s", target, remote), !l.Quiet(), func() error {
				return r.client.Push(ctx, remote, target)
			})
			if err != nil {
				return err
			}
			if msg := r.client.Response().LastMessage(); msg != "" {
				l.Println(msg)
			}
			runAutoHooks(ctx, r, hooks.TriggerPush, noHook)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before pushing the base branch")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip push hooks")
	cmd.ValidArgsFunction = completeRemoteThenBranch

	return cmd
}

// remoteArgs reads the optional remote and branch arguments.
func remoteArgs(args []string, defaultRemote string) (remote, branch string) {
	remote = defaultRemote
	if len(args) > 0 {
		remote = args[0]
	}
	if len(args) > 1 {
		branch = args[1]
	}
	return remote, branch
}
