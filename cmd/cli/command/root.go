package command

// root.go defines the root command of the yamdb admin tool and the
// database session shared by its subcommands.

import (
	"fmt"
	"log/slog"
	"os"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yamdb-admin",
	Short: "yamdb-admin - YaMDb administration tool",
	Long: `yamdb-admin manages a YaMDb deployment directly through its database.
It reads the same environment (and .env file) as the API server and can:
- Apply the schema migrations
- Create an administrator and print their confirmation code
- Change the role of an existing user

Use "yamdb-admin command --help" to see the options of a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		// logs go to stderr so stdout stays usable in scripts
		logger = logging.New(os.Stderr, cfg.LogLevel, "text")

		db, err = database.Connect(cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		return database.Close(db)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(setRoleCmd)
}
