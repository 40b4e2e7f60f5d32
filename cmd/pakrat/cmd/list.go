package cmd

import (
	"github.com/pakrat-io/pakrat/pkg/project"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list TOML [TOML...]",
	Short: "Write package information as configured list files",
	Long: `Build every list variant the manifest configures under [list.<name>]
and write it to its configured file, keeping one backup generation of
the previous content. Variants without a file are diagnosed and
skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		m := loadManifest(args)
		diag := diagLogger()

		variants := project.Variants(m)
		if len(params.list.types) != 0 {
			variants = restrictVariants(variants, params.list.types)
		}
		w := project.NewListWriter(cmdFs)
		for _, v := range variants {
			file, err := project.File(v, m)
			if err != nil {
				wrapFatalln("cannot resolve list file", err)
				return
			}
			if file == "" {
				diag.Printf("Missing file for list type '%s'", v)
				continue
			}
			content, err := project.BuildList(v, m)
			if err != nil {
				wrapFatalln("cannot build list "+v, err)
				return
			}
			if err := w.Write(file, content); err != nil {
				wrapFatalln("cannot write list "+v, err)
				return
			}
		}
	},
}

func restrictVariants(variants, want []string) []string {
	keep := map[string]struct{}{}
	for _, v := range want {
		keep[v] = struct{}{}
	}
	r := make([]string, 0, len(variants))
	for _, v := range variants {
		if _, ok := keep[v]; ok {
			r = append(r, v)
		}
	}
	return r
}

func init() {
	addListTypeFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}
