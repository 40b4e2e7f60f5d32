package cmd

import (
	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap TOML [TOML...]",
	Short: "Print shell commands to get packages",
	Long: `Print a POSIX shell script that clones or links every package the
manifest configures, suitable for bringing up a fresh machine without
pakrat installed.`,
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManifest(args)
		eachActive(m, func(p *manifest.Package) {
			p.Origin.Bootstrap()
		})
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
