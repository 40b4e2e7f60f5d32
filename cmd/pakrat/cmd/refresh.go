package cmd

import (
	"context"

	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh TOML [TOML...]",
	Short: "Clone or update packages",
	Long: `Clone every configured package that is not present locally yet, and
update the ones that are. Packages whose local path is in an unexpected
state are diagnosed and skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := loadManifest(args)
		eachActive(m, func(p *manifest.Package) {
			p.Origin.Refresh(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
