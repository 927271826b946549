package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pritdesai016/theoquity-journal/internal/config"
	"github.com/pritdesai016/theoquity-journal/internal/ledger"
	"github.com/pritdesai016/theoquity-journal/internal/logging"
	"github.com/pritdesai016/theoquity-journal/internal/session"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Sessions *session.Manager
}

// Ledger returns the ledger for the session selected on the command line.
func (a *App) Ledger(cmd *cobra.Command) (ledger.Ledger, error) {
	key, _ := cmd.Flags().GetString("session")
	if key == "" {
		key = "default"
	}
	return a.Sessions.Get(key)
}

// Output builds the command's output helper, honoring the UI configuration.
func (a *App) Output(cmd *cobra.Command) *Output {
	o := NewOutput(cmd)
	if a.Config != nil {
		o.colorEnabled = o.colorEnabled && a.Config.UI.ColorEnabled
		if a.Config.UI.DateFormat != "" {
			o.dateFormat = a.Config.UI.DateFormat
		}
		if a.Config.UI.TimeFormat != "" {
			o.timeFormat = a.Config.UI.TimeFormat
		}
	}
	return o
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// The factory reads app.Config, not cfg, so a --config reload in
	// PersistentPreRunE takes effect before the first session is created.
	app.Sessions = session.NewManager(func() (ledger.Ledger, error) {
		if app.Config.Ledger.Backend == "sqlite" {
			led, err := ledger.NewSQLite(app.Config.Ledger.DBPath)
			if err != nil {
				app.Logger.Warn().Err(err).Msg("Failed to open sqlite ledger, falling back to memory")
				return ledger.NewMemory(), nil
			}
			return led, nil
		}
		return ledger.NewMemory(), nil
	})

	rootCmd := &cobra.Command{
		Use:   "theoquity",
		Short: "Theoquity - manual trade journaling CLI",
		Long: `Theoquity is a manual trade-journaling tool.

Record discretionary trade legs and stop-loss events, then derive P&L,
R-multiple, locked-R and holding-period metrics from the record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dir, _ := cmd.Flags().GetString("config"); dir != "" {
				loaded, err := config.Load(dir)
				if err != nil {
					return err
				}
				app.Config = loaded
			}
			if key, _ := cmd.Flags().GetString("session"); key != "" {
				app.Logger = logging.WithSession(app.Logger, key)
			}
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/theoquity)")
	rootCmd.PersistentFlags().String("session", "default", "session key owning the ledger")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addTradeCommands(rootCmd, app)
	addStopCommands(rootCmd, app)
	addMetricsCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addExportCommands(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd(app))

	return rootCmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := app.Output(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
				return
			}
			output.Printf("theoquity %s\n", Version)
		},
	}
}
