package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vieraprotocol/subvet/internal/adapters/outbound/config"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/tui"
	"github.com/vieraprotocol/subvet/internal/domain"
)

func newCodeCmd() *cobra.Command {
	var (
		language   string
		filename   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "code [file]",
		Short: "Validate a single code file or snippet",
		Long:  "Validate source code directly, without submission machinery. Reads from the given file, or from stdin when no file is provided.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, name, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			if filename == "" {
				filename = name
			}
			if language == "" {
				lang, ok := domain.LanguageForExtension(strings.ToLower(filepath.Ext(filename)))
				if !ok {
					return fmt.Errorf("cannot infer language from %q, pass --language", filename)
				}
				language = string(lang.Name)
			}

			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}

			report, err := svc.ValidateCode(cmd.Context(), source, language, filename)
			if err != nil {
				return fmt.Errorf("code validation failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Source language (python, javascript)")
	cmd.Flags().StringVar(&filename, "filename", "", "Filename to report issues against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")

	return cmd
}

func readSource(cmd *cobra.Command, args []string) (source, filename string, err error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading source file: %w", err)
		}
		return string(data), filepath.Base(args[0]), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "", nil
}
