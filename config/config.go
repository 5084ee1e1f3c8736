// Package config holds app wide settings that are unmarshalled
// from Viper (see: /cmd/repgen)
package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/SEEDtk/repgen"
)

// IndexConfig are the parameters an index is created with. They are
// frozen into the index file at build time; later commands read them
// back from the file rather than from here.
type IndexConfig struct {
	// the K-mer length used for seed protein fingerprints
	K int `mapstructure:"kmer-size"`

	// the minimum K-mer similarity at which two genomes are
	// considered redundant
	Threshold int `mapstructure:"threshold"`

	// the annotated function naming the seed protein
	Protein string `mapstructure:"protein"`

	// alternate annotation strings accepted for the same protein
	Aliases []string `mapstructure:"aliases"`
}

// Config is the root-level settings struct, a mix of settings from
// settings.yaml and the command line.
type Config struct {
	// enable debug output
	Verbose bool `mapstructure:"verbose"`

	// index build parameters
	Index IndexConfig `mapstructure:"index"`
}

// SetDefaults registers the default index parameters with viper.
// Called before flags are bound so flags and settings.yaml both
// override them.
func SetDefaults() {
	viper.SetDefault("index.kmer-size", 8)
	viper.SetDefault("index.threshold", 100)
	viper.SetDefault("index.protein", repgen.DefaultSeedProtein)
	viper.SetDefault("index.aliases", []string{repgen.SeedProteinAliasSubunit})
}

// New returns a Config populated by Viper from settings.yaml and/or
// command line arguments.
func New() Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}
