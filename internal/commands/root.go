// Package commands provides CLI commands for the kiosk display.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/kioskfeed/internal/config"
	"github.com/diogo/kioskfeed/internal/kiosk"
	"github.com/diogo/kioskfeed/internal/logging"
	"github.com/diogo/kioskfeed/internal/render"
	"github.com/diogo/kioskfeed/internal/tui"
)

// Flags shared by the commands
type Flags struct {
	Server    string
	Chat      string
	Classroom string
	Config    string
	Theme     string
	Markdown  string
	Rotation  time.Duration
	Refresh   time.Duration
	Plain     bool
}

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the kiosk command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "kiosk [page-url]",
		Short: "Unattended display for a Telegram channel feed",
		Long: `kiosk shows the messages of a Telegram channel on a screen, one at a time,
with a progress bar per message, a live clock and a date that alternates
between two languages. Messages are polled from the feed server.

Examples:
  kiosk "https://bacheca.example.org/?chat=-100123&classroom=3A"
  kiosk --server http://localhost:8080 --chat -100123
  kiosk --plain --chat -100123 >> display.log
  kiosk fetch --chat -100123            Print the feed once
  kiosk config                          Show the effective configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Out, "kiosk %s (built %s)\n", Version, BuildTime)
				return nil
			}

			cfg, err := resolveConfig(flags, args)
			if err != nil {
				return err
			}
			return runKiosk(cmd.Context(), cfg, flags.Plain, deps)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Server, "server", "", "Feed server base URL (e.g. http://localhost:8080)")
	pf.StringVar(&flags.Chat, "chat", "", "Telegram channel id")
	pf.StringVar(&flags.Classroom, "classroom", "", "Classroom id shown in the header")
	pf.StringVar(&flags.Config, "config", "", "Config file (default ~/.kiosk/config.json)")

	f := cmd.Flags()
	f.BoolVar(&flags.Plain, "plain", false, "Print display changes as lines instead of drawing the screen")
	f.StringVar(&flags.Theme, "theme", "", "Color theme (tokyonight, catppuccin, nord)")
	f.StringVar(&flags.Markdown, "markdown", "", "Message formatting: lite or full")
	f.DurationVar(&flags.Rotation, "rotation", 0, "Time each message stays on screen")
	f.DurationVar(&flags.Refresh, "refresh", 0, "Feed polling interval")
	f.BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewFetchCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps, flags))
	return cmd
}

var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}

// resolveConfig layers config file and environment, then the page URL, then flags
func resolveConfig(flags *Flags, args []string) (config.Config, error) {
	cfg, err := config.LoadConfigFrom(flags.Config)
	if err != nil {
		return cfg, err
	}

	if len(args) > 0 {
		target, err := ParsePageURL(args[0])
		if err != nil {
			return cfg, err
		}
		cfg.ServerURL = target.ServerURL
		if target.Chat != "" {
			cfg.Chat = target.Chat
		}
		if target.Classroom != "" {
			cfg.Classroom = target.Classroom
		}
	}

	if flags.Server != "" {
		cfg.ServerURL = flags.Server
	}
	if flags.Chat != "" {
		cfg.Chat = flags.Chat
	}
	if flags.Classroom != "" {
		cfg.Classroom = flags.Classroom
	}
	if flags.Theme != "" {
		cfg.TUITheme = flags.Theme
	}
	if flags.Markdown != "" {
		cfg.Markdown = flags.Markdown
	}
	if flags.Rotation > 0 {
		cfg.RotationInterval = flags.Rotation
	}
	if flags.Refresh > 0 {
		cfg.RefreshInterval = flags.Refresh
	}

	return cfg, cfg.Validate()
}

// sessionOptions maps the configuration onto a display session
func sessionOptions(cfg config.Config) kiosk.Options {
	loc, _ := cfg.Location()
	primary, secondary := cfg.Locales()
	return kiosk.Options{
		ChatID:         cfg.Chat,
		ClassroomLabel: kiosk.ClassroomLabel(cfg.Classroom, cfg.Classrooms),
		DefaultTitle:   cfg.DefaultTitle,
		Primary:        primary,
		Secondary:      secondary,
		Location:       loc,
		SyncServerTime: cfg.SyncServerTime,
	}
}

func schedule(cfg config.Config) kiosk.Schedule {
	return kiosk.Schedule{
		Rotation: cfg.RotationInterval,
		Refresh:  cfg.RefreshInterval,
		Language: cfg.LanguageInterval,
		Reset:    cfg.ResetInterval,
		Timeout:  cfg.RequestTimeout,
	}
}

// runKiosk drives the display until interrupted
func runKiosk(ctx context.Context, cfg config.Config, plain bool, deps *Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	plain = plain || !deps.IsTerminal()

	logOpts := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}
	if plain {
		logOpts.Console = os.Stderr
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer closer.Close()

	fetcher, err := deps.NewFetcher(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	opts := sessionOptions(cfg)
	logger.Info("starting display", "server", cfg.ServerURL, "chat", cfg.Chat, "plain", plain)

	if plain {
		renderer := tui.NewPlainRenderer(deps.Out)
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := kiosk.Loop(ctx, func() *kiosk.Session {
			return kiosk.NewSession(opts, renderer, logger)
		}, fetcher, schedule(cfg))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	render.SetTUITheme(cfg.TUITheme)
	tui.UpdateTheme()

	factory := func(r kiosk.Renderer) *kiosk.Session {
		return kiosk.NewSession(opts, r, logger)
	}
	return deps.TUI.RunKiosk(factory, fetcher, tui.Options{
		Schedule: schedule(cfg),
		Markdown: render.DefaultOptions().WithMode(cfg.Markdown).WithStyle(cfg.MarkdownStyle),
	})
}

// isStdoutTTY returns true if stdout is a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
