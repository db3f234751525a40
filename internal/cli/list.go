package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/dateutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked problems and their review states",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := svc.List(context.Background(), viper.GetString("owner"))
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("no tracked problems")
			return nil
		}

		today := dateutil.Today(timeNow())
		for _, item := range items {
			fmt.Printf("%s (%s) added %s\n", item.Title, item.Slug, item.AddedOn.Format())
			for _, cp := range item.Checkpoints {
				fmt.Printf("  %-14s %s  %s\n", cp.Label, cp.DueOn.Format(), cp.StatusOn(today))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
