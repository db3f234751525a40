// Package cli wires the tracker into cobra commands. Configuration is
// resolved flag > config file > default via viper.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/leettrack/internal/logutil"
	"github.com/example/leettrack/internal/storage"
	"github.com/example/leettrack/internal/tracker"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "leettrack",
	Short: "Spaced-repetition tracker for coding practice problems.",
	Long: `leettrack schedules every tracked problem for review 3, 7 and 15
days after you first solve it, and shows what is due from a terminal
dashboard or an HTTP API.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.leettrack.yaml)")
	rootCmd.PersistentFlags().String("db", "", "sqlite database path (default is $HOME/.leettrack.db)")
	rootCmd.PersistentFlags().String("owner", "local", "owner whose problems the command operates on")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")

	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".leettrack")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("leettrack")
	viper.AutomaticEnv()

	viper.SetDefault("db", "")
	viper.SetDefault("owner", "local")
	viper.SetDefault("serve.listen", ":8714")
	viper.SetDefault("serve.auth_user", "")
	viper.SetDefault("serve.auth_pass", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	logutil.SetLogLevel(levelString)
}

func databasePath() (string, error) {
	if path := viper.GetString("db"); path != "" {
		return path, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".leettrack.db"), nil
}

// openService opens the sqlite store, applies migrations, and returns
// the tracker service. The caller closes the db.
func openService() (*tracker.Service, *sql.DB, error) {
	path, err := databasePath()
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := storage.MigrateUp(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logutil.Log.WithField("db", path).Debug("storage ready")
	return tracker.New(repo), db, nil
}
