package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/veDesk/internal/audit"
	"rhystmorgan/veDesk/internal/config"
	"rhystmorgan/veDesk/internal/logging"
	"rhystmorgan/veDesk/internal/state"
	"rhystmorgan/veDesk/internal/storage"
	"rhystmorgan/veDesk/internal/views"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	configFile string
	fixtures   string
	logFile    string
	verbose    bool

	config  *config.AppConfig
	logger  *zap.Logger
	session *state.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "vedesk",
		Short: "vedesk - contacts and meetings in the terminal",
		Long: `vedesk manages a small set of contacts and the meetings they attend.

Run without arguments to open the interactive interface. Records are seeded
from the built-in fixtures or from --fixtures and live in memory only.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .vedesk.yaml in the working or home directory)")
	flags.StringVar(&a.fixtures, "fixtures", "", "YAML file with seed contacts and meetings")
	flags.StringVar(&a.logFile, "log-file", "", "log file path; empty disables logging")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newContactsCmd(a), newMeetingsCmd(a))
	return root
}

// setup loads configuration, applies flag overrides and builds the session.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadAppConfig(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fixtures") {
		cfg.Fixtures = a.fixtures
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.config = cfg

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("failed to resolve log path: %w", err)
	}
	a.logger, err = logging.New(logPath, cfg.Level())
	if err != nil {
		return err
	}

	fixturesPath, err := cfg.FixturesPath()
	if err != nil {
		return fmt.Errorf("failed to resolve fixtures path: %w", err)
	}
	seed, err := storage.LoadFixtures(fixturesPath)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	a.logger.Info("session starting",
		zap.String("command", cmd.Name()),
		zap.Int("contacts", len(seed.Contacts)),
		zap.Int("meetings", len(seed.Meetings)),
	)

	a.session = state.NewSession(
		storage.NewStore(seed),
		state.WithLogger(a.logger),
		state.WithRecorder(audit.NewRecorder(a.logger, 0)),
	)
	return nil
}

func (a *app) runTUI() error {
	model := views.NewAppModel(a.session,
		views.WithLogger(a.logger),
		views.WithAnimation(a.config.ToAnimationConfig()),
		views.WithTheme(views.Theme{
			AccentMeetings: a.config.Theme.AccentMeetings,
			AccentContacts: a.config.Theme.AccentContacts,
		}),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}

	a.logger.Info("session finished",
		zap.Int("revision", a.session.Revision()),
		zap.Int("audit_entries", a.session.Recorder().Len()),
	)
	return nil
}
