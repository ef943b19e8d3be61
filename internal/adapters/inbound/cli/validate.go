package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vieraprotocol/subvet/internal/adapters/outbound/config"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/gitinfo"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/history"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/submission"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/tui"
	"github.com/vieraprotocol/subvet/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		researcher    string
		submissionID  string
		jsonOutput    bool
		ciMode        bool
		minConfidence int
		showHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate a research submission",
		Long:  "Analyze submission files or directories and produce a confidence score with a verdict.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := submissionRoot(args[0])
			if err != nil {
				return err
			}

			hist := history.New()
			if showHistory {
				entries, err := hist.Load(root)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			cfg, err := config.New().Load(root)
			if err != nil {
				return err
			}

			files, err := submission.New().Load(args)
			if err != nil {
				return err
			}

			svc, err := buildService(cfg)
			if err != nil {
				return err
			}

			if submissionID == "" {
				submissionID = filepath.Base(root)
			}
			report, err := svc.ValidateSubmission(cmd.Context(), submissionID, files, domain.ResearcherType(researcher))
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			// Pin the report to the submission's revision if it is a repo.
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(root); err == nil {
				report.CommitHash = hash
			}

			entry := domain.ReportEntry{
				Timestamp:      report.Timestamp.Format(time.RFC3339),
				ValidationID:   report.ValidationID,
				Confidence:     report.Confidence,
				Recommendation: report.Recommendation,
			}
			_ = hist.Save(root, entry) // best-effort

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && report.Confidence < minConfidence {
				return fmt.Errorf("confidence %d is below minimum %d", report.Confidence, minConfidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&researcher, "researcher-type", "r", string(domain.ResearcherCoder), "Researcher type (coder, researcher, data_scientist)")
	cmd.Flags().StringVar(&submissionID, "submission-id", "", "Submission identifier for the validation ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min-confidence")
	cmd.Flags().IntVar(&minConfidence, "min-confidence", 0, "Minimum confidence for CI mode")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show validation history")

	return cmd
}

// submissionRoot resolves where config, history and git metadata live: the
// first path itself when it is a directory, its parent otherwise.
func submissionRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("reading submission path: %w", err)
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

func renderJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
