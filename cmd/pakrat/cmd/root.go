package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pakrat",
	Short: "Pakrat keeps a set of repositories in sync with a manifest",
	Long: `Pakrat resolves declarative TOML manifests describing packages and where
they come from, then clones, updates, links, or reports on the configured
repositories, and projects the resolved configuration as JSON or as
generated list files.

Manifest values are layered and expanded lazily: package properties shadow
templates, which shadow globals and the process environment, and any value
may reference another with {name} placeholders.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
	addDefineFlag(rootCmd)
	addPackageFlag(rootCmd)
	addAllFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("PAKRAT_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("PAKRAT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pakrat")
		viper.AddConfigPath("/etc/pakrat")
		viper.SetConfigName("pakrat")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setPakratParams(&params)
}
