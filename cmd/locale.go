package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-render/pkg/config"
	"github.com/nikogura/resume-render/pkg/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var localeNoRender bool

//nolint:gochecknoglobals // Cobra boilerplate
var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show the active locale and where it came from",
	Args:  cobra.NoArgs,
	RunE:  runLocale,
}

//nolint:gochecknoglobals // Cobra boilerplate
var localeSetCmd = &cobra.Command{
	Use:   "set <locale>",
	Short: "Switch the preferred locale and re-render",
	Long: `Switch the preferred locale, save it to the preferences file and render
index.html again in that locale.

Example:
  resume-render locale set pt-BR
  resume-render locale set en --no-render`,
	Args: cobra.ExactArgs(1),
	RunE: runLocaleSet,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(localeCmd)
	localeCmd.AddCommand(localeSetCmd)
	localeSetCmd.Flags().BoolVar(&localeNoRender, "no-render", false, "Only save the preference")
}

func runLocale(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	svc := newLocaleService(cfg, "")
	fmt.Printf("%s (%s)\n", svc.Current(), svc.Source())
	if getVerbose() {
		fmt.Printf("Preferences: %s\n", cfg.PreferencesPath)
		fmt.Printf("Platform: %q\n", platformLocale())
	}
	return err
}

func runLocaleSet(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	svc := newLocaleService(cfg, "")
	tag, err := svc.Switch(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Locale set to %s\n", tag)

	if localeNoRender {
		return err
	}

	var pipeline *resume.Pipeline
	pipeline, err = newPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	err = renderOnce(ctx, pipeline, cfg.OutputDir, svc.Current(), false)
	return err
}
