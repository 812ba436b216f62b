package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tplprint/config"
	"tplprint/misc"
	"tplprint/state"
)

// initializeAppContext prepares program environment after command line has
// been parsed and before any command runs.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()
	env.Baseline = env.Cfg.Document.Baseline.Effective()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()),
		zap.Stringer("baseline", env.Baseline))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()), zap.String("id", env.Rpt.ID()))
	}
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// log is synced, from now on errors go to stderr directly
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	return
}

// Errors from commands are regular errors, cli.Exit is not used. When log
// is available they are logged here, otherwise main prints them.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func newApp() *cli.Command {
	sourceHelp := fmt.Sprintf(`%s
SOURCE:
    path to template markup file (XML), non UTF-8 encodings are accepted when
    declared in XML header
`, cli.CommandHelpTemplate)

	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "inspection tool for receipt printer layout templates",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:               "tree",
				Usage:              "Prints component tree built from template",
				OnUsageError:       usageErrorHandler,
				Action:             printTree,
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: sourceHelp,
			},
			{
				Name:         "fonts",
				Usage:        "Lists font families template refers to",
				OnUsageError: usageErrorHandler,
				Action:       listFonts,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "keep declaration order and duplicates"},
				},
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: sourceHelp,
			},
			{
				Name:               "styles",
				Usage:              "Prints effective style of every component",
				OnUsageError:       usageErrorHandler,
				Action:             printStyles,
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: sourceHelp,
			},
			{
				Name:               "assets",
				Usage:              "Checks images template refers to",
				OnUsageError:       usageErrorHandler,
				Action:             checkAssets,
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: sourceHelp,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
