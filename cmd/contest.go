package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ameysr/codex-frontend/internal/app"
	"github.com/Ameysr/codex-frontend/internal/log"
)

var contestCmd = &cobra.Command{
	Use:   "contest <contest-id>",
	Short: "Join a contest and open its editor",
	Args:  cobra.ExactArgs(1),
	RunE:  runContest,
}

func init() {
	rootCmd.AddCommand(contestCmd)
}

func runContest(cmd *cobra.Command, args []string) error {
	services, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	model := app.NewContest(services, args[0])
	return runProgram(model)
}
