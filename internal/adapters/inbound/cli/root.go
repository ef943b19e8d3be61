package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "subvet",
		Short:         "Vet research submissions before they reach a reviewer",
		Long:          "Subvet runs research/code submissions through malware, file-type, content-risk and code quality analysis, reducing the findings into one confidence score and a verdict.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newCodeCmd())
	cmd.AddCommand(newLanguagesCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
