package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/git"
)

// completeBranches provides local branch name completion for the
// repository in the working directory.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	r, err := openRepo(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	branches, err := r.client.Branches().List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return branchNames(branches, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func branchNames(branches []git.Branch, prefix string) []string {
	var matches []string
	for _, b := range branches {
		if !b.Detached && strings.HasPrefix(b.Name, prefix) {
			matches = append(matches, b.Name)
		}
	}
	return matches
}

// completeRemoteThenBranch completes a remote name first, then a branch.
func completeRemoteThenBranch(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeRemotes(cmd, args, toComplete)
	case 1:
		return completeBranches(cmd, args, toComplete)
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeRemotes completes the remotes configured in git config.
func completeRemotes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	r, err := openRepo(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tree, err := r.client.Config(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	section, ok := tree.Section("remote")
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var matches []string
	for _, name := range section.Keys() {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
