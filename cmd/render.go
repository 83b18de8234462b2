package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-render/pkg/config"
	"github.com/nikogura/resume-render/pkg/fetch"
	"github.com/nikogura/resume-render/pkg/locale"
	"github.com/nikogura/resume-render/pkg/page"
	"github.com/nikogura/resume-render/pkg/renderer"
	"github.com/nikogura/resume-render/pkg/resume"
	"github.com/nikogura/resume-render/pkg/watch"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderLocale string

//nolint:gochecknoglobals // Cobra boilerplate
var renderAll bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var renderWatch bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the résumé to static HTML",
	Long: `Render the résumé to index.html in the output directory.

The locale comes from --lng, then the saved preference, then LANG, then
en-US. With --all every supported locale is rendered to index.<locale>.html
and the locale buttons link the files to each other.

Example:
  resume-render render
  resume-render render --lng pt-BR
  resume-render render --all --output-dir ./public
  resume-render render --all --watch`,
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderLocale, "lng", "", "Locale to render (en-US or pt-BR)")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every supported locale")
	renderCmd.Flags().StringVar(&renderOutputDir, "output-dir", "", "Output directory (default from config)")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "Re-render when local input files change")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if renderLocale != "" {
		if _, ok := locale.Normalize(renderLocale); !ok {
			err = errors.Errorf("unsupported locale: %s", renderLocale)
			return err
		}
	}

	logger := newLogger(cfg)
	var pipeline *resume.Pipeline
	pipeline, err = newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	outDir := getOutputDir(renderOutputDir, cfg.OutputDir)
	tag := newLocaleService(cfg, renderLocale).Current()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = renderOnce(ctx, pipeline, outDir, tag, renderAll)
	if err != nil {
		return err
	}

	if !renderWatch {
		return err
	}

	err = watchAndRender(ctx, cfg, pipeline, outDir, tag)
	return err
}

// renderOnce renders tag, or every locale with all, and writes the files.
// Nothing is written when any locale fails.
func renderOnce(ctx context.Context, pipeline *resume.Pipeline, outDir string, tag language.Tag, all bool) (err error) {
	if !all {
		var content []byte
		content, err = pipeline.Render(ctx, tag, nil)
		if err != nil {
			return err
		}
		path := renderer.OutputPath(outDir, tag.String(), false)
		err = renderer.WriteHTML(content, path)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s)\n", path, tag)
		return err
	}

	var pages []resume.Page
	pages, err = pipeline.RenderAll(ctx, fileLink)
	if err != nil {
		return err
	}

	for _, p := range pages {
		path := renderer.OutputPath(outDir, p.Locale.String(), true)
		err = renderer.WriteHTML(p.Content, path)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s)\n", path, p.Locale)
	}
	return err
}

// fileLink points locale buttons at the sibling file of each locale.
func fileLink(tag language.Tag) (href string) {
	href = "index." + tag.String() + ".html"
	return href
}

// localInputs lists the local files a render reads.
func localInputs(cfg config.Config) (paths []string) {
	candidates := []string{cfg.BaseDocument, cfg.Shell}
	for _, tag := range locale.Supported {
		candidates = append(candidates, fetch.OverlayLocation(cfg.OverlayPattern, tag.String()))
	}

	for _, c := range candidates {
		if c == "" || fetch.IsURL(c) {
			continue
		}
		if renderer.ValidateFiles(c) != nil {
			continue
		}
		paths = append(paths, c)
	}
	return paths
}

func watchAndRender(ctx context.Context, cfg config.Config, pipeline *resume.Pipeline, outDir string, tag language.Tag) (err error) {
	inputs := localInputs(cfg)
	if len(inputs) == 0 {
		err = errors.New("--watch needs at least one local input file")
		return err
	}

	var w *watch.Watcher
	w, err = watch.New(inputs, 0, pipeline.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("Watching %d files, press Ctrl-C to stop\n", w.Files())
	err = w.Run(ctx, func(name string) {
		if getVerbose() {
			fmt.Printf("Changed: %s\n", name)
		}
		if cfg.Shell != "" {
			shell, shellErr := page.LoadShell(cfg.Shell)
			if shellErr == nil {
				pipeline.Shell = shell
			}
		}
		// Failures are logged by the pipeline and the previous files stay.
		_ = renderOnce(ctx, pipeline, outDir, tag, renderAll)
	})
	return err
}
