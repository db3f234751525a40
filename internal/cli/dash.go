package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/update"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

func runDashboard() error {
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	model := update.NewModelWithService(svc, viper.GetString("owner"))
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
