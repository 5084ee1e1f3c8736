package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SEEDtk/repgen"
	"github.com/SEEDtk/repgen/config"
	"github.com/SEEDtk/repgen/logger"
)

// buildCmd creates a new index from seed protein FASTA files.
var buildCmd = &cobra.Command{
	Use:   "build [index-file] [fasta-file] ...",
	Short: "Build a representative genome index from seed protein FASTA files",
	Long: `Build reads seed proteins from FASTA files, keeps each genome whose
protein is dissimilar to every representative kept so far, and saves
the resulting index. Input order matters: the first genome of any
redundant group becomes its representative.

FASTA headers are read as a feature ID followed by the genome name,
e.g. ">fig|1005530.3.peg.2208 Dyadobacter fermentans DSM 18053".`,
	Args: cobra.MinimumNArgs(2),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().Int("kmer-size", 8,
		"K-mer length for seed protein fingerprints")
	buildCmd.Flags().Int("threshold", 100,
		"minimum K-mer similarity at which two genomes are redundant")
	buildCmd.Flags().String("protein", repgen.DefaultSeedProtein,
		"annotated function naming the seed protein")
	buildCmd.Flags().StringSlice("alias", []string{repgen.SeedProteinAliasSubunit},
		"alternate annotation accepted for the seed protein")

	viper.BindPFlag("index.kmer-size", buildCmd.Flags().Lookup("kmer-size"))
	viper.BindPFlag("index.threshold", buildCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("index.protein", buildCmd.Flags().Lookup("protein"))
	viper.BindPFlag("index.aliases", buildCmd.Flags().Lookup("alias"))

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	conf := config.New()
	db := repgen.NewRepDB(conf.Index.Threshold, conf.Index.Protein,
		conf.Index.Aliases, conf.Index.K)

	logger.Info("building index",
		zap.Int("kmer-size", conf.Index.K),
		zap.Int("threshold", conf.Index.Threshold),
		zap.String("protein", conf.Index.Protein))

	totalSeen := 0
	for _, fastaFile := range args[1:] {
		seqs, err := repgen.ReadSeqs(fastaFile)
		if err != nil {
			logger.Fatal("could not open FASTA file",
				zap.String("file", fastaFile), zap.Error(err))
		}
		added, seen, err := db.AddGenomes(seqs)
		if err != nil {
			logger.Fatal("admission failed",
				zap.String("file", fastaFile), zap.Error(err))
		}
		totalSeen += seen
		logger.Info("processed FASTA file",
			zap.String("file", fastaFile),
			zap.Int("genomes", seen),
			zap.Int("kept", added))
	}

	if err := db.Save(args[0]); err != nil {
		logger.Fatal("could not save index",
			zap.String("file", args[0]), zap.Error(err))
	}
	logger.Info("index saved",
		zap.String("file", args[0]),
		zap.Int("genomes", totalSeen),
		zap.Int("representatives", db.Size()))
}
