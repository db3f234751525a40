package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/dateutil"
)

var addCmd = &cobra.Command{
	Use:   "add <problem-url>",
	Short: "Track a problem and schedule its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		today := dateutil.Today(timeNow())
		item, err := svc.Create(context.Background(), viper.GetString("owner"), args[0], today)
		if err != nil {
			return err
		}

		fmt.Printf("tracking %s (%s)\n", item.Title, item.Slug)
		for _, cp := range item.Checkpoints {
			fmt.Printf("  %-14s %s\n", cp.Label, cp.DueOn.DisplayFull())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
