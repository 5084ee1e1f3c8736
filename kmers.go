package repgen

import (
	"log"
	"strings"
)

// A KmerSet is the set of all distinct K-mers in a single protein
// sequence. It is the fingerprint used to estimate how similar two
// proteins are without aligning them: the more K-mers two proteins
// share, the more alike they are.
//
// A KmerSet is immutable once built. Every set carries the K it was
// built with; comparing sets built with different K values is
// meaningless, so Similarity and Distance panic if the values differ.
type KmerSet struct {
	k     int
	kmers map[string]struct{}
}

// NewKmerSet builds the K-mer set for a protein sequence. Residues are
// upper cased first, so fingerprints are case insensitive. A sequence
// shorter than K produces an empty set.
func NewKmerSet(k int, sequence string) KmerSet {
	if k < 1 {
		log.Panicf("K-mer size must be positive, got %d.", k)
	}
	seq := strings.ToUpper(sequence)

	kmers := make(map[string]struct{}, max(0, len(seq)-k+1))
	for i := 0; i+k <= len(seq); i++ {
		kmers[seq[i:i+k]] = struct{}{}
	}
	return KmerSet{k: k, kmers: kmers}
}

// K returns the K-mer length this set was built with.
func (ks KmerSet) K() int {
	return ks.k
}

// Len returns the number of distinct K-mers in the set.
func (ks KmerSet) Len() int {
	return len(ks.kmers)
}

// Similarity returns the number of K-mers found in both sets. It is
// symmetric: ks.Similarity(other) == other.Similarity(ks).
//
// Similarity panics if the two sets were built with different K
// values. Such a comparison indicates a bug in the caller, not a
// recoverable condition.
func (ks KmerSet) Similarity(other KmerSet) int {
	if ks.k != other.k {
		log.Panicf("Cannot compare K-mer sets with different K values "+
			"(%d and %d).", ks.k, other.k)
	}

	// Iterate over the smaller set.
	small, big := ks.kmers, other.kmers
	if len(big) < len(small) {
		small, big = big, small
	}

	count := 0
	for kmer := range small {
		if _, ok := big[kmer]; ok {
			count++
		}
	}
	return count
}

// Distance converts similarity into a number in the unit interval:
// 0 for identical fingerprints, 1 for fingerprints with nothing in
// common. The similarity is scaled by the size of the smaller set, so
// a short protein fully contained in a longer one has distance 0.
//
// The result usually behaves like a metric for related proteins, but
// the triangle inequality is not guaranteed.
func (ks KmerSet) Distance(other KmerSet) float64 {
	sim := ks.Similarity(other)
	scale := min(len(ks.kmers), len(other.kmers))
	if scale < 1 {
		scale = 1
	}
	return 1.0 - float64(sim)/float64(scale)
}
