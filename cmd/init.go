package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-render/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to $HOME/.resume-render/config.json, or to the
path given with --config. An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return err
}
