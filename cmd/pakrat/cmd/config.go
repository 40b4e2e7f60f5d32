package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	LogLevel  string   `json:"loglevel" yaml:"loglevel"`   // Default logging level
	Manifests []string `json:"manifests" yaml:"manifests"` // Default manifest files
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setPakratParams(flags *flagsT) {
	// an explicit --log-level always wins over the config file
	if !rootCmd.PersistentFlags().Changed("log-level") && c.LogLevel != "" {
		flags.root.logLevel = c.LogLevel
	}
}
