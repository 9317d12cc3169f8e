package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/config"
	"github.com/reportkit/reportkit/internal/definition"
	"github.com/reportkit/reportkit/internal/markup"
	"github.com/reportkit/reportkit/internal/res"
	"github.com/reportkit/reportkit/pkg/api"
)

const appName = "reportkit"

func version() string {
	if bi, ok := rdebug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// env carries state shared between command line phases. It travels in the
// context so Before, the actions and After see the same instance.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	start time.Time
}

type envKey struct{}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &env{start: time.Now()})
}

func envFromContext(ctx context.Context) *env {
	return ctx.Value(envKey{}).(*env)
}

// initializeAppContext prepares application context before command execution
// but after the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	e := envFromContext(ctx)

	configFile := cmd.String("config")
	if e.cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		e.cfg.Logging.Console.Level = "debug"
	}
	if e.log, err = e.cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", version()),
		zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)

	if e.log != nil {
		e.log.Debug("Program ended",
			zap.Duration("elapsed", time.Since(e.start)),
			zap.Strings("parsed args", cmd.Args().Slice()))
		_ = e.log.Sync()
	}

	// log is synced now - remove empty panic file if any
	if e.cfg != nil && len(e.cfg.Logging.File.Destination) > 0 {
		rdebug.SetCrashOutput(nil, rdebug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(e.cfg.Logging.File.Destination), appName+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Errors from subcommands are returned as regular errors and logged here,
// before the app context is destroyed, so they land in the configured log.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	if e.log != nil {
		e.log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "generates project report PDFs from a YAML report definition",
		Version:         version() + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug detail to the console"},
		},
		Commands: []*cli.Command{
			{
				Name:         "generate",
				Usage:        "Generates the report PDF from a definition file",
				OnUsageError: usageErrorHandler,
				Action:       runGenerate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"},
						Usage: "write the PDF to `FILE` instead of <roll_number>_Report.pdf"},
				},
				ArgsUsage: "DEFINITION",
				CustomHelpTemplate: fmt.Sprintf(`%s
DEFINITION:
    path to the YAML report definition: cover metadata plus the ordered
    block list. Paragraph entries use "paragraph" (interpreted under the
    configured paragraph mode), "text" (always plain) or "html" (always
    rich); "image" entries reference files relative to the definition.
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output the built-in default configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set the exit code, make
	// sure there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no definition file given")
	}
	if cmd.Args().Len() > 1 {
		e.log.Warn("Malformed command line, too many definitions", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	def, err := definition.Load(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	mode, err := markup.ParseMode(e.cfg.Document.ParagraphMode)
	if err != nil {
		return err
	}

	loader := res.NewLoader()
	for _, p := range e.cfg.Document.ResourcePaths {
		loader.AddSearchPath(p)
	}
	blocks, err := def.ReportBlocks(mode, loader)
	if err != nil {
		return err
	}

	opts := api.DefaultOptions()
	opts.Logger = e.log
	// Definition paragraphs are rendered to inline markup above; the
	// generator must not interpret them a second time.
	opts.ParagraphMode = markup.ModeMarkup
	opts.ResourcePaths = append(opts.ResourcePaths, e.cfg.Document.ResourcePaths...)
	switch {
	case e.cfg.Document.Logo.Path != "":
		opts.LogoRef = e.cfg.Document.Logo.Path
	case e.cfg.Document.Logo.URL != "":
		opts.LogoRef = e.cfg.Document.Logo.URL
	}

	output := cmd.String("output")
	if output == "" {
		output = config.CleanFileName(def.OutputName())
	}

	e.log.Info("Generating report",
		zap.String("definition", cmd.Args().Get(0)),
		zap.Int("blocks", len(blocks)),
		zap.Stringer("paragraph_mode", mode))

	if err := api.NewWithOptions(opts).GenerateToFile(def.ReportMetadata(), blocks, output); err != nil {
		return fmt.Errorf("unable to generate report: %w", err)
	}
	e.log.Info("Report written", zap.String("file", output))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		e.log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	cfg := e.cfg
	state := "actual"
	if cmd.Bool("default") {
		cfg = config.Default()
		state = "default"
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	} else {
		fname = "STDOUT"
	}

	e.log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
