package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/tint/pkg/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available syntax highlighting themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range theme.SyntaxThemeNames() {
				marker := " "
				if theme.IsLightSyntaxTheme(name) {
					marker = "☀"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
		},
	}
}
