package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-render/pkg/config"
	"github.com/nikogura/resume-render/pkg/locale"
	"github.com/nikogura/resume-render/pkg/page"
	"github.com/nikogura/resume-render/pkg/resume"
	"github.com/nikogura/resume-render/pkg/richtext"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-render",
	Short: "Render a bilingual résumé from JSON",
	Long: `resume-render turns a structured résumé document into HTML in English or
Portuguese.

A base document is merged with a per-locale translation overlay
(./data/i18n/{locale}.json by default) and every section is projected into
the page shell. Render static files, or serve the page with locale switching.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-render/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// getOutputDir prefers the flag value over the config value.
func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}

// loadConfig loads the configuration named by --config.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}
	return cfg, err
}

// newLogger builds the stderr logger. --verbose forces debug.
func newLogger(cfg config.Config) (logger *slog.Logger) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if getVerbose() {
		level = slog.LevelDebug
	}

	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	return logger
}

// newPipeline wires the render pipeline from the configuration.
func newPipeline(cfg config.Config, logger *slog.Logger) (p *resume.Pipeline, err error) {
	var shell []byte
	shell, err = page.LoadShell(cfg.Shell)
	if err != nil {
		return p, err
	}

	p = &resume.Pipeline{
		BaseLocation:   cfg.BaseDocument,
		OverlayPattern: cfg.OverlayPattern,
		Shell:          shell,
		Logger:         logger,
	}
	if cfg.RichText {
		p.Rich = richtext.NewConverter()
	}
	return p, err
}

// newLocaleService resolves the CLI locale from the flag, the saved
// preference and the process environment.
func newLocaleService(cfg config.Config, requested string) (svc *locale.Service) {
	var store locale.PreferenceStore
	if cfg.PreferencesPath != "" {
		store = locale.NewFileStore(cfg.PreferencesPath)
	}
	svc = locale.NewService(requested, platformLocale(), store)
	return svc
}

// platformLocale reads the POSIX locale variables in priority order.
func platformLocale() (raw string) {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			raw = v
			return raw
		}
	}
	return raw
}
