package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SEEDtk/repgen"
	"github.com/SEEDtk/repgen/logger"
)

var flagCheckSave bool

// checkCmd offers new genomes to an existing index.
var checkCmd = &cobra.Command{
	Use:   "check [index-file] [fasta-file] ...",
	Short: "Offer new genomes to an existing index",
	Long: `Check streams seed proteins against a saved index and reports, per
genome, whether it would be admitted as a new representative or is
already covered by an existing one. With --save, admitted genomes are
kept and the index file is rewritten.`,
	Args: cobra.MinimumNArgs(2),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckSave, "save", false,
		"write admitted genomes back to the index file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	db, err := repgen.LoadRepDB(args[0])
	if err != nil {
		logger.Fatal("could not load index",
			zap.String("file", args[0]), zap.Error(err))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	admitted := 0
	for _, fastaFile := range args[1:] {
		seqs, err := repgen.ReadSeqs(fastaFile)
		if err != nil {
			logger.Fatal("could not open FASTA file",
				zap.String("file", fastaFile), zap.Error(err))
		}
		for rs := range seqs {
			if rs.Err != nil {
				logger.Fatal("could not read candidate",
					zap.String("file", fastaFile), zap.Error(rs.Err))
			}
			g, err := db.NewGenome(rs.Rec.FeatureID, rs.Rec.Name, rs.Rec.Residues)
			if err != nil {
				logger.Fatal("bad candidate", zap.Error(err))
			}
			verdict := "covered"
			if db.CheckGenome(g) {
				verdict = "admitted"
				admitted++
			}
			fmt.Fprintf(out, "%s\t%s\n", g.GenomeID, verdict)
		}
	}

	logger.Info("check complete",
		zap.Int("admitted", admitted),
		zap.Int("representatives", db.Size()))
	if flagCheckSave && admitted > 0 {
		if err := db.Save(args[0]); err != nil {
			logger.Fatal("could not save index",
				zap.String("file", args[0]), zap.Error(err))
		}
		logger.Info("index saved", zap.String("file", args[0]))
	}
}
