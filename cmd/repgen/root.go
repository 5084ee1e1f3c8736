// The repgen command selects and queries representative genomes using
// seed protein K-mer similarity.
package main

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/SEEDtk/repgen/config"
	"github.com/SEEDtk/repgen/logger"
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use: "repgen",
	Short: `Select representative genomes from large genome collections.
Genomes are compared through the K-mer fingerprint of a single
universally-conserved seed protein`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if viper.GetBool("verbose") {
			level = zapcore.DebugLevel
		}
		return logger.InitLogger(level)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
	config.SetDefaults()

	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"enable debug output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initSettings reads the optional settings.yaml from the working
// directory and lets REPGEN_* environment variables override it.
func initSettings() {
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("repgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings file: %v", err)
		}
	}
}
