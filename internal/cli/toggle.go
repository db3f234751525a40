package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <slug> <kind>",
	Short: "Complete or reopen one review (kinds: day3, day7, day15)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := model.Cadence(args[1])
		if !kind.IsValid() {
			return fmt.Errorf("unknown review kind %q, want day3, day7 or day15", args[1])
		}

		svc, db, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		owner := viper.GetString("owner")
		items, err := svc.List(ctx, owner)
		if err != nil {
			return err
		}
		itemID := ""
		for _, item := range items {
			if item.Slug == args[0] || item.ID == args[0] {
				itemID = item.ID
				break
			}
		}
		if itemID == "" {
			return fmt.Errorf("no tracked problem matches %q", args[0])
		}

		updated, err := svc.Toggle(ctx, owner, itemID, kind, dateutil.Today(timeNow()))
		if err != nil {
			return err
		}
		cp, _ := updated.Checkpoint(kind)
		if cp.Completed() {
			fmt.Printf("%s %s done on %s\n", updated.Title, cp.Label, cp.CompletedOn.Format())
		} else {
			fmt.Printf("%s %s reopened\n", updated.Title, cp.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
