package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/resume-render/pkg/config"
	"github.com/nikogura/resume-render/pkg/locale"
	"github.com/nikogura/resume-render/pkg/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var mergeLocale string

//nolint:gochecknoglobals // Cobra boilerplate
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Print the merged document as JSON",
	Long: `Merge the base document with the translation overlay of a locale and print
the result. Useful for checking what a translation actually changes.

Example:
  resume-render merge --lng pt-BR`,
	RunE: runMerge,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeLocale, "lng", "", "Locale to merge (en-US or pt-BR)")
}

func runMerge(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if mergeLocale != "" {
		if _, ok := locale.Normalize(mergeLocale); !ok {
			err = errors.Errorf("unsupported locale: %s", mergeLocale)
			return err
		}
	}

	var pipeline *resume.Pipeline
	pipeline, err = newPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	tag := newLocaleService(cfg, mergeLocale).Current()
	if getVerbose() {
		fmt.Printf("Merging %s with %s\n", cfg.BaseDocument, tag)
	}

	var result resume.Result
	result, err = pipeline.Load(ctx, tag)
	if err != nil {
		return err
	}

	var out string
	out, err = result.Merged.Indent()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return err
}
