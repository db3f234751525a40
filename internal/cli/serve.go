package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/logutil"
	"github.com/example/leettrack/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the tracker over JSON/HTTP. With --auth-user and --auth-pass
set, requests need basic auth and the username becomes the owner of the
problems it touches; without them everything belongs to the local owner.

Due dates are evaluated against the server's local calendar day, so pin
TZ when clients sit in a different timezone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		srv := server.New(svc,
			viper.GetString("serve.auth_user"),
			viper.GetString("serve.auth_pass"),
			logutil.Log,
		)
		return srv.Start(viper.GetString("serve.listen"))
	},
}

func init() {
	serveCmd.Flags().String("listen", ":8714", "listen address")
	serveCmd.Flags().String("auth-user", "", "basic auth username")
	serveCmd.Flags().String("auth-pass", "", "basic auth password")
	_ = viper.BindPFlag("serve.listen", serveCmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("serve.auth_user", serveCmd.Flags().Lookup("auth-user"))
	_ = viper.BindPFlag("serve.auth_pass", serveCmd.Flags().Lookup("auth-pass"))
	rootCmd.AddCommand(serveCmd)
}
