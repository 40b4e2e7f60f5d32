package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		logLevel string
	}
	manifest struct {
		defines  []string
		packages []string
		all      bool
	}
	list struct {
		types []string
	}
}

var params flagsT

func addDefineFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&params.manifest.defines, "define", "D", nil,
		"Define NAME=VALUE, overriding manifest files")
}

func addPackageFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&params.manifest.packages, "package", "p", nil,
		"Limit operations to named packages")
}

func addAllFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&params.manifest.all, "all", "a", false,
		"Also perform repository operations on un-loaded packages")
}

func addListTypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&params.list.types, "type", "L", nil,
		"Limit list writing to named variants")
}

func addLogLevel(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&params.root.logLevel, "log-level", "none",
		"The logging level, one of: none, info, debug")
}

// splitDefine splits a NAME=VALUE define on the first '='. A define with
// no '=' names an empty value.
func splitDefine(d string) (string, string) {
	if i := strings.IndexByte(d, '='); i >= 0 {
		return d[:i], d[i+1:]
	}
	return d, ""
}
