package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vieraprotocol/subvet/internal/domain"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range domain.SupportedLanguages() {
				lang, _ := domain.LanguageByName(string(name))
				linter := "built-in patterns"
				if lang.HasSecurityLinter {
					linter = "dedicated security linter"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-12s %s\n",
					name, strings.Join(lang.Extensions, ","), linter)
			}
			return nil
		},
	}
}
