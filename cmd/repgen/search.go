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

// searchCmd finds the closest representative for each query protein.
var searchCmd = &cobra.Command{
	Use:   "search [index-file] [fasta-file] ...",
	Short: "Find the closest representative for each query protein",
	Long: `Search loads an index and scans it for the representative whose seed
protein is most similar to each query. Results are written to stdout
as tab-separated lines:

	query-id  rep-genome-id  rep-name  similarity  distance

A query with no K-mers in common with any representative reports an
empty genome ID and distance 1.`,
	Args: cobra.MinimumNArgs(2),
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	db, err := repgen.LoadRepDB(args[0])
	if err != nil {
		logger.Fatal("could not load index",
			zap.String("file", args[0]), zap.Error(err))
	}
	logger.Info("index loaded",
		zap.String("file", args[0]),
		zap.Int("representatives", db.Size()))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	fmt.Fprintln(out, "query_id\trep_id\trep_name\tsimilarity\tdistance")

	for _, fastaFile := range args[1:] {
		seqs, err := repgen.ReadSeqs(fastaFile)
		if err != nil {
			logger.Fatal("could not open FASTA file",
				zap.String("file", fastaFile), zap.Error(err))
		}
		for rs := range seqs {
			if rs.Err != nil {
				logger.Fatal("could not read query",
					zap.String("file", fastaFile), zap.Error(rs.Err))
			}
			rep := db.FindClosest(rs.Rec.Residues)
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%0.4f\n",
				rs.Rec.FeatureID, rep.GenomeID, rep.Name,
				rep.Similarity, rep.Distance)
		}
	}
}
