package main

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/diff"
	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/static"
)

func newDiffCmd() *cobra.Command {
	var (
		nameStatus bool
		hunks      bool
		stat       bool
		words      bool
		ignoreWS   bool
		copyOut    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "diff [<from> [<to>]] [-- <path>]",
		Short:   "Show changes split into files and hunks",
		GroupID: GroupCore,
		Args:    diffArgs,
		Long: `Show changes split into files and hunks.

Without revisions, compares the working tree with the index. With <from>,
compares <from> with <to>, which defaults to default_base from the config.
A path after -- limits the comparison.`,
		Example: `  gw diff                  # Unstaged changes
  gw diff HEAD             # HEAD against the default base
  gw diff main feature     # Two branches
  gw diff -- README.md     # One file
  gw diff --words          # Highlight changed words
  gw diff --stat           # Added/removed lines per file
  gw diff --json | jq .    # Parsed diff as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}

			opts := diffOptions(cmd, args, r.cfg.DefaultBase)
			opts.IgnoreWhitespace = r.cfg.Diff.IgnoreWhitespace
			if cmd.Flags().Changed("ignore-whitespace") {
				opts.IgnoreWhitespace = ignoreWS
			}
			wordDiff := r.cfg.Diff.WordDiff
			if cmd.Flags().Changed("words") {
				wordDiff = words
			}

			if nameStatus {
				text, err := r.client.DiffNameStatus(ctx, opts)
				if err != nil {
					return err
				}
				if text != "" {
					out.Println(text)
				}
				return nil
			}

			set, err := r.client.Diff(ctx, opts)
			if err != nil {
				return err
			}

			switch {
			case jsonOutput:
				return out.JSON(newDiffJSON(set))
			case set == nil:
				l.Println("No differences")
				return nil
			case hunks:
				out.Print(set.String())
			case stat:
				out.Print(static.RenderTable(statHeaders, statRows(set.Files())))
			default:
				rendered := static.RenderDiff(set, static.DiffOptions{WordDiff: wordDiff})
				out.Print(rendered)
				if copyOut {
					if err := clipboard.WriteAll(ansi.Strip(rendered)); err != nil {
						l.Warnf("failed to copy to clipboard: %v", err)
					} else {
						l.Printf("Copied %d file(s) to clipboard\n", set.Len())
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nameStatus, "name-status", false, "Show only names and change codes")
	cmd.Flags().BoolVar(&hunks, "hunks", false, "Print hunk headers and bodies without decoration")
	cmd.Flags().BoolVar(&stat, "stat", false, "Show added and removed lines per file")
	cmd.Flags().BoolVar(&words, "words", false, "Highlight changed words (default from diff.word_diff)")
	cmd.Flags().BoolVarP(&ignoreWS, "ignore-whitespace", "w", false, "Ignore whitespace changes (default from diff.ignore_whitespace)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the rendered diff to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("name-status", "hunks", "stat", "json")
	cmd.ValidArgsFunction = completeBranches

	return cmd
}

// diffArgs allows up to two revisions before -- and one path after it.
func diffArgs(cmd *cobra.Command, args []string) error {
	revs, paths := splitAtDash(cmd, args)
	if len(revs) > 2 {
		return fmt.Errorf("expected at most 2 revisions, got %d", len(revs))
	}
	if len(paths) > 1 {
		return fmt.Errorf("expected at most 1 path after --, got %d", len(paths))
	}
	return nil
}

func splitAtDash(cmd *cobra.Command, args []string) (before, after []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func diffOptions(cmd *cobra.Command, args []string, base string) git.DiffOptions {
	revs, paths := splitAtDash(cmd, args)
	var opts git.DiffOptions
	if len(revs) > 0 {
		opts.From = revs[0]
		opts.To = base
	}
	if len(revs) > 1 {
		opts.To = revs[1]
	}
	if len(paths) > 0 {
		opts.Path = paths[0]
	}
	return opts
}

var statHeaders = []string{"FILE", "ADDED", "REMOVED"}

func statRows(files []*diff.File) [][]string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		name := f.NameB()
		if f.Renamed() {
			name = f.NameA() + " → " + f.NameB()
		}
		if f.IsBinary() {
			rows = append(rows, []string{name, "-", "-"})
			continue
		}
		added, removed := f.Stats()
		rows = append(rows, []string{name, strconv.Itoa(added), strconv.Itoa(removed)})
	}
	return rows
}
