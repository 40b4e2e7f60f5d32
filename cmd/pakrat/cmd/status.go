package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/pakrat-io/pakrat/pkg/origin"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status TOML [TOML...]",
	Short: "Report status of packages",
	Long: `Check every configured package against its local repository and print a
summary table. Native version-control output, when any, precedes the
table.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := loadManifest(args)

		table := uitable.New()
		table.AddRow("PACKAGE", "VCS", "STATUS", "PATH")
		eachActive(m, func(p *manifest.Package) {
			s := p.Origin.CheckStatus(ctx)
			table.AddRow(p.Key, p.Origin.Kind(), colorStatus(s), p.Origin.Local())
		})
		fmt.Fprintln(cmdOut, table)
	},
}

func colorStatus(s origin.Status) string {
	switch s {
	case origin.StatusUnchanged:
		return color.GreenString(s.String())
	case origin.StatusError:
		return color.RedString(s.String())
	case origin.StatusDirty:
		return color.YellowString(s.String())
	case origin.StatusUpgradable:
		return color.CyanString(s.String())
	default:
		return color.HiBlackString(s.String())
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
