package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var removeCmd = &cobra.Command{
	Use:   "remove <slug>",
	Short: "Stop tracking a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		for _, item := range items {
			if item.Slug == args[0] || item.ID == args[0] {
				if err := svc.Remove(ctx, owner, item.ID); err != nil {
					return err
				}
				fmt.Printf("removed %s\n", item.Title)
				return nil
			}
		}
		return fmt.Errorf("no tracked problem matches %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
