package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ameysr/codex-frontend/internal/config"
	"github.com/Ameysr/codex-frontend/internal/progress"
)

var goalCmd = &cobra.Command{
	Use:   "goal [target]",
	Short: "Show or set the daily solve goal",
	Long: `Without arguments, prints the configured daily goal and today's
progress. With a numeric target, sets the daily goal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGoal,
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, args []string) error {
	cfg, configPath, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	repo := progress.NewRepository(progress.NewFileStorage(config.DataPath(cfg, configPath)))

	if len(args) == 1 {
		target, err := strconv.Atoi(args[0])
		if err != nil || target < 1 {
			return fmt.Errorf("target must be a positive number, got %q", args[0])
		}
		if err := repo.SetGoal(progress.DailyGoal{Target: target}); err != nil {
			return err
		}
		fmt.Printf("Daily goal set to %d problem(s)\n", target)
		return nil
	}

	goal, err := repo.Goal()
	if err != nil {
		return err
	}
	if goal == nil {
		fmt.Println("No daily goal configured. Set one with: codex goal <target>")
		return nil
	}
	today, err := repo.SolvedToday()
	if err != nil {
		return err
	}
	fmt.Printf("Daily goal: %d/%d solved today\n", today, goal.Target)
	return nil
}
