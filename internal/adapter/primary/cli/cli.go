package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shutdown-timer/internal/adapter/primary/web"
	"shutdown-timer/internal/adapter/secondary/notify"
	"shutdown-timer/internal/adapter/secondary/shutdown"
	"shutdown-timer/internal/config"
	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
	"shutdown-timer/internal/usecase"
)

var (
	cfgPath   string
	verbosity int
	cfg       = config.DefaultConfig()

	// newDispatcher is replaced in tests.
	newDispatcher = buildDispatcher
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shutdown-timer",
		Short:        "Schedule or cancel a system shutdown from a duration like 10s, 5m, 2h or 1d",
		Long:         "Launcher-style shutdown timer: type a duration, confirm, and the OS shutdown facility does the rest.",
		SilenceUsage: true,
	}

	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", cfgPath, "config file path")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "more logging (-v, -vv, ... up to 4)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Configure(cfg.Log.Format, os.Stderr)
		if verbosity > 0 {
			logging.SetVerbosity(verbosity)
		} else {
			level, _, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			logging.SetLevel(level)
		}
		logging.Tracef("config %s loaded: backend=%s", cfgPath, cfg.Shutdown.Backend)
		return nil
	}

	cmd.AddCommand(
		newQueryCmd(),
		newScheduleCmd(),
		newCancelCmd(),
		newServeCmd(),
		newConfigCmd(),
		newInfoCmd(),
		newShellCmd(),
	)

	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCmd()
	root.SetArgs(durationArgs(os.Args[1:]))
	return root.Execute()
}

// durationArgs ends flag parsing before the first token that looks like a
// negative number, so "schedule -5m" reaches the parser instead of being
// read as the shorthand flag -5.
func durationArgs(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if len(a) > 1 && a[0] == '-' && a[1] >= '0' && a[1] <= '9' {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

func buildDispatcher(cfg config.Config) (usecase.CommandDispatcher, error) {
	platform := shutdown.DetectPlatform()
	logging.Debugf("platform: os=%s platform=%s %s", platform.OS, platform.Platform, platform.PlatformVersion)
	controller, err := shutdown.New(cfg.Shutdown, platform)
	if err != nil {
		return nil, err
	}
	if cfg.Shutdown.Backend == config.BackendDryRun {
		logging.Warnf("dry-run backend: no shutdown command will be run")
	}
	return usecase.NewCommandDispatcher(controller, notify.New(cfg.Notify, platform.OS))
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [text...]",
		Short: "Show what a query would do without executing it",
		// Previews never need the shutdown or notification adapters.
		RunE: func(cmd *cobra.Command, args []string) error {
			printResults(cmd.OutOrStdout(), domain.NewCommandService().Results(strings.Join(args, " ")))
			return nil
		},
	}
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "schedule <duration...>",
		Aliases: []string{"in"},
		Short:   "Schedule a shutdown, e.g. 'schedule 90s' or 'schedule 2 h'",
		Example: "  shutdown-timer schedule 10\n  shutdown-timer in 2h\n  shutdown-timer schedule -- -5m",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			return report(cmd, uc.Execute(cmd.Context(), uc.Evaluate(strings.Join(args, " "))))
		},
	}
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel any pending shutdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			return report(cmd, uc.Execute(cmd.Context(), uc.CancelIntent()))
		},
	}
}

// report prints a success or hands the failure to cobra, so each outcome
// is shown exactly once.
func report(cmd *cobra.Command, out domain.Outcome) error {
	if !out.OK() {
		return errors.New(out.Message)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Title, out.Message)
	return nil
}

func printResults(w io.Writer, results []domain.Result) {
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, r.Title, r.Subtitle)
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web launcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Web.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			srv := web.NewServer(uc, addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Shutdown Timer running at http://%s\n", addr)
			logging.Infof("Web launcher: http://%s", addr)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logging.Errorf("web launcher shutdown: %v", err)
				}
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address host:port (default from config)")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the configuration file",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the effective configuration (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if cfg.Notify.Telegram.BotToken != "" {
				token = "********"
			}
			display := map[string]any{
				"path": cfgPath,
				"shutdown": map[string]any{
					"backend":          cfg.Shutdown.Backend,
					"force":            cfg.Shutdown.Force,
					"timeout":          cfg.Shutdown.Timeout.String(),
					"schedule_command": cfg.Shutdown.ScheduleCommand,
					"cancel_command":   cfg.Shutdown.CancelCommand,
				},
				"notify": map[string]any{
					"desktop": cfg.Notify.Desktop,
					"telegram": map[string]any{
						"enabled":   cfg.Notify.Telegram.Enabled,
						"bot_token": token,
						"chat_id":   cfg.Notify.Telegram.ChatID,
					},
				},
				"log": map[string]any{"level": cfg.Log.Level, "format": cfg.Log.Format},
				"web": map[string]any{"addr": cfg.Web.Addr},
			}
			out, _ := json.MarshalIndent(display, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		backend     string
		force       bool
		timeout     time.Duration
		scheduleCmd string
		cancelCmd   string
		desktop     bool
		tgEnabled   bool
		tgToken     string
		tgChat      int64
		logLevel    string
		logFormat   string
		addr        string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update configuration values and save them",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated := cfg
			flags := cmd.Flags()
			if flags.Changed("backend") {
				updated.Shutdown.Backend = backend
			}
			if flags.Changed("force") {
				updated.Shutdown.Force = force
			}
			if flags.Changed("timeout") {
				updated.Shutdown.Timeout = timeout
			}
			if flags.Changed("schedule-command") {
				updated.Shutdown.ScheduleCommand = scheduleCmd
			}
			if flags.Changed("cancel-command") {
				updated.Shutdown.CancelCommand = cancelCmd
			}
			if flags.Changed("desktop") {
				updated.Notify.Desktop = desktop
			}
			if flags.Changed("telegram") {
				updated.Notify.Telegram.Enabled = tgEnabled
			}
			if flags.Changed("telegram-token") {
				updated.Notify.Telegram.BotToken = tgToken
			}
			if flags.Changed("telegram-chat") {
				updated.Notify.Telegram.ChatID = tgChat
			}
			if flags.Changed("log-level") {
				updated.Log.Level = logLevel
			}
			if flags.Changed("log-format") {
				updated.Log.Format = logFormat
			}
			if flags.Changed("addr") {
				updated.Web.Addr = addr
			}

			if err := config.Save(cfgPath, updated); err != nil {
				return err
			}
			cfg = updated
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s: backend=%s timeout=%s desktop=%t telegram=%t\n",
				cfgPath, updated.Shutdown.Backend, updated.Shutdown.Timeout, updated.Notify.Desktop, updated.Notify.Telegram.Enabled)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&backend, "backend", config.BackendAuto, "auto|windows|linux|darwin|custom|dryrun")
	f.BoolVar(&force, "force", false, "force-close applications (windows)")
	f.DurationVar(&timeout, "timeout", 10*time.Second, "limit for each shutdown command")
	f.StringVar(&scheduleCmd, "schedule-command", "", "custom backend schedule command ({seconds}, {minutes})")
	f.StringVar(&cancelCmd, "cancel-command", "", "custom backend cancel command")
	f.BoolVar(&desktop, "desktop", false, "desktop notifications")
	f.BoolVar(&tgEnabled, "telegram", false, "telegram notifications")
	f.StringVar(&tgToken, "telegram-token", "", "telegram bot token")
	f.Int64Var(&tgChat, "telegram-chat", 0, "telegram chat id")
	f.StringVar(&logLevel, "log-level", "warn", "error|warn|info|debug|trace")
	f.StringVar(&logFormat, "log-format", "console", "console|json")
	f.StringVar(&addr, "addr", "127.0.0.1:7070", "web launcher address host:port")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the detected platform and the shutdown commands that would run",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			p := shutdown.DetectPlatform()
			fmt.Fprintf(w, "host:     %s\n", p.Hostname)
			fmt.Fprintf(w, "os:       %s %s %s\n", p.OS, p.Platform, p.PlatformVersion)
			fmt.Fprintf(w, "backend:  %s\n", cfg.Shutdown.Backend)

			backend, err := shutdown.BackendFor(cfg.Shutdown, p.OS)
			if err != nil {
				fmt.Fprintf(w, "commands: unavailable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(w, "schedule: %s\n", strings.Join(backend.ScheduleArgs(600), " "))
			fmt.Fprintf(w, "cancel:   %s\n", strings.Join(backend.CancelArgs(), " "))
			return nil
		},
	}
}
