package repgen

import (
	"regexp"
	"strings"
)

// featureIDPattern matches FIG feature identifiers of the form
// fig|<genomeID>.<featureType>.<ordinal>, where the genome ID is a
// taxon number and a version separated by a dot (e.g. "1005530.3").
var featureIDPattern = regexp.MustCompile(`^fig\|(\d+\.\d+)\.([a-zA-Z]+)\.(\d+)$`)

// A RepGenome is one representative genome in an index: the genome's
// identity plus the K-mer fingerprint of its seed protein. The
// fingerprint stands in for the whole genome when similarity is
// computed.
//
// Two RepGenomes are the same genome iff their GenomeIDs are equal;
// the name and the fingerprint are not part of identity.
type RepGenome struct {
	// GenomeID is parsed out of the seed protein's feature ID.
	GenomeID string

	// Name is the genome's display name, free text.
	Name string

	// FeatureID identifies the seed protein feature this genome was
	// fingerprinted from.
	FeatureID string

	// Protein holds the seed protein residues. Saved indexes persist
	// the residues and rebuild fingerprints on load.
	Protein string

	// Fingerprint is the K-mer set of the seed protein.
	Fingerprint KmerSet
}

// NewRepGenome wraps a seed protein sequence into a representative
// genome candidate. The genome ID is parsed from the feature ID; a
// *MalformedFeatureIDError is returned if the feature ID does not
// match the fig|<genomeID>.<type>.<ordinal> pattern.
func NewRepGenome(featureID, name, protein string, k int) (*RepGenome, error) {
	m := featureIDPattern.FindStringSubmatch(featureID)
	if m == nil {
		return nil, &MalformedFeatureIDError{FeatureID: featureID}
	}
	return &RepGenome{
		GenomeID:    m[1],
		Name:        name,
		FeatureID:   featureID,
		Protein:     strings.ToUpper(protein),
		Fingerprint: NewKmerSet(k, protein),
	}, nil
}

// Similarity returns the number of K-mers this genome's seed protein
// shares with another genome's.
func (g *RepGenome) Similarity(other *RepGenome) int {
	return g.Fingerprint.Similarity(other.Fingerprint)
}

// Distance returns the fingerprint distance between the two genomes'
// seed proteins, in [0, 1].
func (g *RepGenome) Distance(other *RepGenome) float64 {
	return g.Fingerprint.Distance(other.Fingerprint)
}

// Compare orders genomes by genome ID as plain strings. The ordering
// is lexicographic, not numeric: "100.1" sorts before "99.1". Saved
// indexes and All depend on this order, so it must not change.
func (g *RepGenome) Compare(other *RepGenome) int {
	return strings.Compare(g.GenomeID, other.GenomeID)
}

// Equals reports whether the two entries represent the same genome.
func (g *RepGenome) Equals(other *RepGenome) bool {
	return other != nil && g.GenomeID == other.GenomeID
}
