package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pakrat-io/pakrat/pkg/project"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show TOML [TOML...]",
	Short: "Print package information as JSON",
	Long: `Project the resolved configuration as a JSON object: the well-known
directory keys, any keys and templates the manifest's [output] table
selects, and one entry per package.`,
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManifest(args)
		out, err := project.Output(m)
		if err != nil {
			wrapFatalln("cannot build output", err)
			return
		}
		b, err := json.MarshalIndent(out, "", " ")
		if err != nil {
			wrapFatalln("cannot marshal output", err)
			return
		}
		fmt.Fprintln(cmdOut, string(b))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
