package repgen

import (
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// A SeqRecord is one labeled protein from a sequence source: the seed
// protein's feature ID, the genome's display name, and the protein
// residues.
type SeqRecord struct {
	FeatureID string
	Name      string
	Residues  string
}

// ReadSeq is the value sent over `chan ReadSeq` as sequences are
// streamed from a FASTA file. A read failure is delivered in-band
// through Err, after which the channel is closed.
type ReadSeq struct {
	Rec SeqRecord
	Err error
}

// ReadSeqs streams the records of a protein FASTA file over a channel.
// The FASTA header is taken as the feature ID followed, optionally, by
// the genome name ("fig|1005530.3.peg.2208 Dyadobacter fermentans").
//
// The file is opened up front, so a missing file fails here rather
// than in-band; it is closed when the stream ends on either path.
func ReadSeqs(fileName string) (<-chan ReadSeq, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}

	seqChan := make(chan ReadSeq, 200)
	go func() {
		defer f.Close()
		defer close(seqChan)

		tmpl := linear.NewSeq("", nil, alphabet.Protein)
		sc := seqio.NewScanner(fasta.NewReader(f, tmpl))
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			id, name := splitHeader(s.ID, s.Desc)
			seqChan <- ReadSeq{
				Rec: SeqRecord{
					FeatureID: id,
					Name:      name,
					Residues:  s.Seq.String(),
				},
			}
		}
		if err := sc.Error(); err != nil {
			seqChan <- ReadSeq{Err: err}
		}
	}()
	return seqChan, nil
}

// splitHeader separates a FASTA header into the feature ID and the
// display name. Readers differ on whether the description was already
// split off the ID, so both pieces are rejoined and split again at the
// first space.
func splitHeader(id, desc string) (string, string) {
	header := strings.TrimSpace(id + " " + desc)
	fields := strings.SplitN(header, " ", 2)
	if len(fields) < 2 {
		return header, ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}

// SeqRecordChan adapts an in-memory record list to the streaming form
// AddGenomes consumes, preserving order.
func SeqRecordChan(records []SeqRecord) <-chan ReadSeq {
	seqChan := make(chan ReadSeq, len(records))
	for _, rec := range records {
		seqChan <- ReadSeq{Rec: rec}
	}
	close(seqChan)
	return seqChan
}
