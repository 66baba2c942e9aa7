package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/odvcencio/tint/pkg/config"
	"github.com/odvcencio/tint/pkg/paint"
	"github.com/odvcencio/tint/pkg/stream"
)

const fallbackTerminalWidth = 80

func main() {
	root := newRootCmd()
	root.AddCommand(newVersionCmd())
	root.AddCommand(newThemesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "tint",
		Short: "Syntax-highlighting pager input for unified diffs",
		Long: "tint reads a unified diff on stdin and writes it back colorized:\n" +
			"syntax highlighting within lines, emphasis on the changed tokens\n" +
			"between paired lines, and styled commit, file and hunk headers.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Explicit = make(map[string]bool)
			cmd.Flags().Visit(func(f *pflag.Flag) {
				opts.Explicit[f.Name] = true
			})
			opts.TerminalTrueColor = termenv.ColorProfile() == termenv.TrueColor

			width := fallbackTerminalWidth
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}

			cfg, err := config.Resolve(opts, width)
			if err != nil {
				return err
			}
			painter, err := paint.New(os.Stdout, cfg)
			if err != nil {
				return err
			}
			return stream.Process(os.Stdin, painter, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.MinusStyle, "minus-style", opts.MinusStyle, "style for removed lines")
	f.StringVar(&opts.MinusEmphStyle, "minus-emph-style", opts.MinusEmphStyle, "style for emphasized sections of removed lines")
	f.StringVar(&opts.MinusNonEmphStyle, "minus-non-emph-style", opts.MinusNonEmphStyle, "style for non-emphasized sections of removed lines with an emphasized section")
	f.StringVar(&opts.ZeroStyle, "zero-style", opts.ZeroStyle, "style for unchanged lines")
	f.StringVar(&opts.PlusStyle, "plus-style", opts.PlusStyle, "style for added lines")
	f.StringVar(&opts.PlusEmphStyle, "plus-emph-style", opts.PlusEmphStyle, "style for emphasized sections of added lines")
	f.StringVar(&opts.PlusNonEmphStyle, "plus-non-emph-style", opts.PlusNonEmphStyle, "style for non-emphasized sections of added lines with an emphasized section")

	f.StringVar(&opts.CommitStyle, "commit-style", opts.CommitStyle, "style for the commit hash line")
	f.StringVar(&opts.CommitDecorationStyle, "commit-decoration-style", opts.CommitDecorationStyle, "style for the commit hash line decoration")
	f.StringVar(&opts.FileStyle, "file-style", opts.FileStyle, "style for the file section line")
	f.StringVar(&opts.FileDecorationStyle, "file-decoration-style", opts.FileDecorationStyle, "style for the file section line decoration")
	f.StringVar(&opts.HunkHeaderStyle, "hunk-header-style", opts.HunkHeaderStyle, "style for hunk headers")
	f.StringVar(&opts.HunkHeaderDecorationStyle, "hunk-header-decoration-style", opts.HunkHeaderDecorationStyle, "style for hunk header decorations")

	f.StringVar(&opts.FileAddedLabel, "file-added-label", opts.FileAddedLabel, "label for added files")
	f.StringVar(&opts.FileModifiedLabel, "file-modified-label", opts.FileModifiedLabel, "label for modified files")
	f.StringVar(&opts.FileRemovedLabel, "file-removed-label", opts.FileRemovedLabel, "label for removed files")
	f.StringVar(&opts.FileRenamedLabel, "file-renamed-label", opts.FileRenamedLabel, "label for renamed files")

	f.BoolVarP(&opts.ShowLineNumbers, "line-numbers", "n", opts.ShowLineNumbers, "show line numbers")
	f.StringVar(&opts.NumberMinusFormat, "number-minus-format", opts.NumberMinusFormat, "gutter format for the old line number column")
	f.StringVar(&opts.NumberPlusFormat, "number-plus-format", opts.NumberPlusFormat, "gutter format for the new line number column")
	f.StringVar(&opts.NumberMinusStyle, "number-minus-style", opts.NumberMinusStyle, "style for old line numbers")
	f.StringVar(&opts.NumberPlusStyle, "number-plus-style", opts.NumberPlusStyle, "style for new line numbers")
	f.StringVar(&opts.NumberMinusFormatStyle, "number-minus-format-style", opts.NumberMinusFormatStyle, "style for the old line number gutter text")
	f.StringVar(&opts.NumberPlusFormatStyle, "number-plus-format-style", opts.NumberPlusFormatStyle, "style for the new line number gutter text")

	f.StringVar(&opts.Theme, "theme", opts.Theme, "syntax highlighting theme, or 'none' to disable")
	f.BoolVar(&opts.Light, "light", opts.Light, "use default styles for a light terminal background")
	f.BoolVar(&opts.Dark, "dark", opts.Dark, "use default styles for a dark terminal background")

	f.BoolVar(&opts.KeepPlusMinusMarkers, "keep-plus-minus-markers", opts.KeepPlusMinusMarkers, "keep the +/- markers on diff lines")
	f.StringVarP(&opts.Width, "width", "w", opts.Width, "output width in columns, or 'variable'")
	f.IntVar(&opts.TabWidth, "tab-width", opts.TabWidth, "number of spaces a tab expands to")

	f.Float64Var(&opts.MaxLineDistance, "max-line-distance", opts.MaxLineDistance, "maximum edit distance for two lines to be paired for emphasis")
	f.Float64Var(&opts.MaxLineDistanceForNaivelyPairedLines, "max-line-distance-for-naively-paired-lines", opts.MaxLineDistanceForNaivelyPairedLines, "maximum length-based distance accepted when pairing lines positionally")

	f.StringVar(&opts.Presets, "presets", opts.Presets, "space-separated preset names, rightmost wins")
	f.StringVar(&opts.TrueColorMode, "24-bit-color", opts.TrueColorMode, "whether to emit 24-bit color: always, never or auto")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tint 0.1.0-dev")
		},
	}
}
