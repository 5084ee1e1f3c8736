package repgen

// Default seed protein for representative-genome indexing. It is
// near-universally conserved, so nearly every genome can be
// fingerprinted from it. Some annotation pipelines use the subunit
// wording, hence the alias.
const (
	DefaultSeedProtein = "Phenylalanyl-tRNA synthetase alpha chain"

	SeedProteinAliasSubunit = "Phenylalanyl-tRNA synthetase subunit alpha"
)

// A GenomeModel is the read-only view of an external genome that the
// index needs: an identity plus the genome's annotated protein
// features. Parsing genome files into such a model is a collaborator's
// job, not this package's.
type GenomeModel interface {
	ID() string
	Name() string
	Features() []Feature
}

// A Feature is one annotated feature of a genome model.
type Feature interface {
	// ID returns the feature identifier (fig|<genome>.<type>.<n>).
	ID() string

	// Function returns the annotated function string.
	Function() string

	// Translation returns the feature's protein sequence, or "" for
	// untranslated features.
	Translation() string
}

// A SeedLocator finds a genome's seed protein feature and turns it
// into a candidate entry for one particular index. It is the only
// bridge between external genome models and the index.
type SeedLocator struct {
	db *RepDB
}

// NewSeedLocator returns a locator bound to an index's seed protein
// name, aliases and K.
func NewSeedLocator(db *RepDB) *SeedLocator {
	return &SeedLocator{db: db}
}

// Locate scans a genome model for a feature whose annotated function
// is exactly the index's protein name or one of its aliases, and
// wraps it into a candidate entry.
//
// A genome without the seed protein is not an error: the ok result is
// false and the genome simply cannot participate in seed-protein
// indexing. When several features carry the annotation, the one with
// the lowest feature ID is chosen, so the same genome always produces
// the same candidate. Features without a translation are ignored.
func (loc *SeedLocator) Locate(gm GenomeModel) (*RepGenome, bool, error) {
	var seed Feature
	for _, feat := range gm.Features() {
		if !loc.matches(feat.Function()) || feat.Translation() == "" {
			continue
		}
		if seed == nil || feat.ID() < seed.ID() {
			seed = feat
		}
	}
	if seed == nil {
		return nil, false, nil
	}

	g, err := loc.db.NewGenome(seed.ID(), gm.Name(), seed.Translation())
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// matches reports whether an annotation string names the seed protein.
// The match is exact, never substring: "... alpha chain domain
// protein" is a different annotation.
func (loc *SeedLocator) matches(function string) bool {
	if function == loc.db.proteinName {
		return true
	}
	for _, alias := range loc.db.aliases {
		if function == alias {
			return true
		}
	}
	return false
}
