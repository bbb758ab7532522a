package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gw configuration and inspect git configuration.

Global config: ~/.config/gw/config.toml (or $GW_CONFIG)
Local config:  .gw.toml (in the repository root)`,
		Example: `  gw config init            # Create default global config
  gw config init --local    # Create local repo config
  gw config show            # Show effective config
  gw config git user.name   # Read one git config key
  gw config git --json      # Dump git config as JSON`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGitCmd())
	cmd.AddCommand(newConfigRemoteURLCmd())
	cmd.AddCommand(newConfigUserCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config. With --local, creates .gw.toml in
the current repository root.`,
		Example: `  gw config init           # Create global config
  gw config init --local   # Create local repo config
  gw config init -f        # Overwrite existing config
  gw config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			if stdout {
				if local {
					out.Print(config.DefaultLocalConfig())
				} else {
					out.Print(config.DefaultConfig())
				}
				return nil
			}

			if !local {
				path, err := config.Init(force)
				if err != nil {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				l.Printf("Created config file: %s\n", path)
				return nil
			}

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			path, err := config.InitLocal(r.root, force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			l.Printf("Created local config: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .gw.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Inside a repository, shows the global config merged with .gw.toml and marks
values that come from the local file. Otherwise shows the global config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)
			global := resolverFromContext(ctx).Global()

			eff := global
			var local *config.LocalConfig
			localPath := ""
			if r, err := openRepo(ctx); err == nil {
				eff = r.cfg
				localPath = filepath.Join(r.root, config.LocalConfigFileName)
				local, err = config.LoadLocal(r.root)
				if err != nil {
					l.Warnf("failed to load local config: %v (using global config)", err)
				}
			}

			if jsonOutput {
				return out.JSON(eff)
			}

			globalPath, _ := config.Path()
			out.Printf("Global config: %s\n", globalPath)
			if localPath != "" {
				if local != nil {
					out.Printf("Local config:  %s\n", localPath)
				} else {
					out.Printf("Local config:  (none)\n")
				}
			}
			out.Println()

			// Helper to annotate source
			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}

			gitBinary := eff.GitBinary
			if gitBinary == "" {
				gitBinary = "(git from PATH)"
			}
			out.Printf("git_binary: %s\n", gitBinary)
			out.Printf("default_remote: %s%s\n", eff.DefaultRemote, source(local != nil && local.DefaultRemote != ""))
			out.Printf("default_base: %s%s\n", eff.DefaultBase, source(local != nil && local.DefaultBase != ""))
			out.Printf("diff.ignore_whitespace: %v%s\n", eff.Diff.IgnoreWhitespace, source(local != nil && local.Diff.IgnoreWhitespace != nil))
			out.Printf("diff.word_diff: %v%s\n", eff.Diff.WordDiff, source(local != nil && local.Diff.WordDiff != nil))
			out.Printf("status.full_path: %v%s\n", eff.Status.FullPath, source(local != nil && local.Status.FullPath != nil))
			out.Printf("ui.theme: %s\n", eff.UI.Theme)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigGitCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "git [<key>]",
		Short: "Read the repository's git configuration",
		Args:  cobra.MaximumNArgs(1),
		Long: `Read the repository's git configuration.

With a dotted key, prints its value. Without one, prints every setting as a
nested document. Numbers and booleans keep their types.`,
		Example: `  gw config git core.bare     # Print one value
  gw config git               # Whole tree as YAML
  gw config git --format json # Whole tree as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := validateFormat(format); err != nil {
				return err
			}

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			tree, err := r.client.Config(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, ok := tree.String(args[0])
				if !ok {
					return fmt.Errorf("git config key %q is not set", args[0])
				}
				out.Println(value)
				return nil
			}

			if format == "json" {
				return out.JSON(tree.Map())
			}
			return out.YAML(tree.Map())
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "yaml", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid: yaml, json)", format)
	}
}

func newConfigRemoteURLCmd() *cobra.Command {
	var web bool

	cmd := &cobra.Command{
		Use:   "remote-url [<remote>]",
		Short: "Print the URL of a remote",
		Args:  cobra.MaximumNArgs(1),
		Long: `Print the URL of a remote. The remote defaults to default_remote.

With --web, SSH and git URLs are converted to their https form, printed as
a clickable link in terminals that support it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			remote := r.cfg.DefaultRemote
			if len(args) == 1 {
				remote = args[0]
			}
			tree, err := r.client.Config(ctx)
			if err != nil {
				return err
			}
			url, ok := tree.RemoteURL(remote)
			if !ok {
				return fmt.Errorf("remote %q has no url", remote)
			}
			if web {
				page, ok := webURL(url)
				if !ok {
					return fmt.Errorf("remote %q has no web url: %s", remote, url)
				}
				if isTerminal(os.Stdout) {
					output.FromContext(ctx).Println(styles.FormatLink(page, page))
					return nil
				}
				url = page
			}
			output.FromContext(ctx).Println(url)
			return nil
		},
	}

	cmd.Flags().BoolVar(&web, "web", false, "Print the https URL of the remote")
	cmd.ValidArgsFunction = completeRemotes

	return cmd
}

// webURL converts a remote URL into the https address of the repository,
// e.g. git@host:me/repo.git to https://host/me/repo.
func webURL(remote string) (string, bool) {
	u := strings.TrimSuffix(strings.TrimSpace(remote), ".git")
	switch {
	case strings.HasPrefix(u, "https://"):
		return u, true
	case strings.HasPrefix(u, "http://"):
		return "https://" + strings.TrimPrefix(u, "http://"), true
	case strings.HasPrefix(u, "ssh://"), strings.HasPrefix(u, "git://"):
		rest := u[strings.Index(u, "://")+3:]
		if _, after, ok := strings.Cut(rest, "@"); ok {
			rest = after
		}
		host, path, ok := strings.Cut(rest, "/")
		if !ok || path == "" {
			return "", false
		}
		if h, _, hasPort := strings.Cut(host, ":"); hasPort {
			host = h
		}
		return "https://" + host + "/" + path, true
	}

	// scp-like syntax: [user@]host:path
	if _, after, ok := strings.Cut(u, "@"); ok {
		u = after
	}
	host, path, ok := strings.Cut(u, ":")
	if !ok || host == "" || path == "" || strings.Contains(host, "/") {
		return "", false
	}
	return "https://" + host + "/" + strings.TrimPrefix(path, "/"), true
}

func newConfigUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Print the configured git author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}
			tree, err := r.client.Config(ctx)
			if err != nil {
				return err
			}
			name, hasName := tree.UserName()
			email, hasEmail := tree.UserEmail()
			switch {
			case hasName && hasEmail:
				output.FromContext(ctx).Printf("%s <%s>\n", name, email)
			case hasName:
				output.FromContext(ctx).Println(name)
			case hasEmail:
				output.FromContext(ctx).Printf("<%s>\n", email)
			default:
				return fmt.Errorf("user.name and user.email are not set")
			}
			return nil
		},
	}
}
