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

var flagStatsList bool

// statsCmd summarizes a saved index.
var statsCmd = &cobra.Command{
	Use:   "stats [index-file]",
	Short: "Summarize a saved index",
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsList, "list", false,
		"list every representative, sorted by genome ID")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	db, err := repgen.LoadRepDB(args[0])
	if err != nil {
		logger.Fatal("could not load index",
			zap.String("file", args[0]), zap.Error(err))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprintf(out, "index:           %s\n", args[0])
	fmt.Fprintf(out, "kmer size:       %d\n", db.K())
	fmt.Fprintf(out, "threshold:       %d\n", db.Threshold())
	fmt.Fprintf(out, "seed protein:    %s\n", db.ProteinName())
	for _, alias := range db.Aliases() {
		fmt.Fprintf(out, "protein alias:   %s\n", alias)
	}
	fmt.Fprintf(out, "representatives: %d\n", db.Size())

	if flagStatsList {
		fmt.Fprintln(out)
		for _, g := range db.All() {
			fmt.Fprintf(out, "%s\t%s\t%s\n", g.GenomeID, g.FeatureID, g.Name)
		}
	}
}
