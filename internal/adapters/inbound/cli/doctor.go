package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vieraprotocol/subvet/internal/adapters/outbound/clamav"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/config"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/lint"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check availability of the external checking tools",
		Long:  "Probe the antivirus daemon and the configured linters. Unavailable tools degrade the corresponding checks, they never fail a validation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if cfg.ClamdAddress == "" {
				fmt.Fprintln(out, "  -  clamd         disabled (no clamd_address configured)")
			} else if err := clamav.New(cfg.ClamdAddress).Ping(); err != nil {
				fmt.Fprintf(out, "  ✗  clamd         unreachable at %s\n", cfg.ClamdAddress)
			} else {
				fmt.Fprintf(out, "  ✓  clamd         running at %s\n", cfg.ClamdAddress)
			}

			tools := []struct {
				name string
				bin  string
			}{
				{"python", cfg.PythonBin},
				{"flake8", cfg.Flake8Bin},
				{"bandit", cfg.BanditBin},
				{"node", cfg.NodeBin},
				{"eslint", cfg.ESLintBin},
			}
			for _, tool := range tools {
				mark := "✓"
				if !lint.Available(tool.bin) {
					mark = "✗"
				}
				fmt.Fprintf(out, "  %s  %-12s %s\n", mark, tool.name, tool.bin)
			}
			return nil
		},
	}
}
