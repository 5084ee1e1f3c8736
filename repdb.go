package repgen

import (
	"log"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/SEEDtk/repgen/logger"
)

// Log a progress line for every chunk of this many candidates during
// a bulk AddGenomes.
const progressInterval = 1000

// A RepDB is an index of representative genomes. It holds one
// RepGenome per genome ID and enforces, through CheckGenome and
// AddGenomes, that no two genomes it keeps have seed proteins with a
// K-mer similarity at or above the threshold. AddRep bypasses that
// check for rebuilding from an already curated list.
//
// The similarity scans behind queries and admission run in parallel
// over a snapshot of the entries; mutation of the entry map itself is
// always a single locked operation, so a concurrent reader sees either
// the pre- or post-admission state, never a torn one.
type RepDB struct {
	threshold   int
	proteinName string
	aliases     []string
	k           int

	genomes map[string]*RepGenome
	lock    *sync.RWMutex

	// admit serializes the scan-then-commit pair so that two
	// concurrent admissions cannot both pass the threshold check and
	// then both insert.
	admit *sync.Mutex
}

// NewRepDB creates an empty index. The threshold is the minimum
// similarity at which two seed proteins make their genomes redundant.
// The protein name (plus any aliases) names the seed protein whose
// fingerprints the index holds. K is fixed for the life of the index;
// every fingerprint offered to it must be built with the same K.
func NewRepDB(threshold int, proteinName string, aliases []string, k int) *RepDB {
	return &RepDB{
		threshold:   threshold,
		proteinName: proteinName,
		aliases:     append([]string(nil), aliases...),
		k:           k,
		genomes:     make(map[string]*RepGenome),
		lock:        &sync.RWMutex{},
		admit:       &sync.Mutex{},
	}
}

// Threshold returns the redundancy threshold.
func (db *RepDB) Threshold() int {
	return db.threshold
}

// ProteinName returns the canonical seed protein name.
func (db *RepDB) ProteinName() string {
	return db.proteinName
}

// Aliases returns the accepted alternate names for the seed protein.
func (db *RepDB) Aliases() []string {
	return append([]string(nil), db.aliases...)
}

// K returns the K-mer length the index's fingerprints are built with.
func (db *RepDB) K() int {
	return db.k
}

// Size returns the number of representative genomes currently held.
func (db *RepDB) Size() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.genomes)
}

// snapshot returns the current entries. The slice is private to the
// caller; the entries themselves are immutable after construction.
func (db *RepDB) snapshot() []*RepGenome {
	db.lock.RLock()
	defer db.lock.RUnlock()

	genomes := make([]*RepGenome, 0, len(db.genomes))
	for _, g := range db.genomes {
		genomes = append(genomes, g)
	}
	return genomes
}

// NewGenome wraps a seed protein sequence into a candidate entry
// fingerprinted with this index's K.
func (db *RepDB) NewGenome(featureID, name, protein string) (*RepGenome, error) {
	return NewRepGenome(featureID, name, protein, db.k)
}

// CheckGenome offers a single candidate to the index. The candidate is
// admitted as a new representative iff its maximum similarity against
// every current entry is below the threshold (an empty index admits
// anything). The return value reports whether it was admitted.
//
// The similarity scan runs in parallel but admissions themselves are
// sequential, so the pairwise invariant holds for every index built
// only through CheckGenome and AddGenomes.
func (db *RepDB) CheckGenome(g *RepGenome) bool {
	if g.Fingerprint.K() != db.k {
		log.Panicf("Candidate %s was fingerprinted with K = %d, but this "+
			"index uses K = %d.", g.GenomeID, g.Fingerprint.K(), db.k)
	}

	db.admit.Lock()
	defer db.admit.Unlock()

	best := scanBest(db.snapshot(), g.Fingerprint)
	if best.genome != nil && best.sim >= db.threshold {
		return false
	}

	db.lock.Lock()
	db.genomes[g.GenomeID] = g
	db.lock.Unlock()
	return true
}

// AddGenomes consumes a stream of seed protein sequences and offers
// each to the index in the order received. Order matters: this is a
// greedy online algorithm, and a different order can keep a different
// set of representatives.
//
// The stream's in-band error, or a malformed feature ID, stops the
// batch immediately. The counts report how many candidates were seen
// and how many were admitted before any failure.
func (db *RepDB) AddGenomes(seqs <-chan ReadSeq) (added, seen int, err error) {
	for rs := range seqs {
		if rs.Err != nil {
			return added, seen, rs.Err
		}

		g, err := db.NewGenome(rs.Rec.FeatureID, rs.Rec.Name, rs.Rec.Residues)
		if err != nil {
			return added, seen, err
		}

		seen++
		if db.CheckGenome(g) {
			added++
		}
		if seen%progressInterval == 0 {
			logger.Debug("admission progress",
				zap.Int("seen", seen),
				zap.Int("kept", added))
		}
	}
	return added, seen, nil
}

// AddRep inserts a representative unconditionally, overwriting any
// entry with the same genome ID. It does not consult the threshold:
// the caller vouches that the entry belongs, as when an index is
// rebuilt from a previously curated list.
func (db *RepDB) AddRep(g *RepGenome) {
	if g.Fingerprint.K() != db.k {
		log.Panicf("Representative %s was fingerprinted with K = %d, but "+
			"this index uses K = %d.", g.GenomeID, g.Fingerprint.K(), db.k)
	}

	db.lock.Lock()
	db.genomes[g.GenomeID] = g
	db.lock.Unlock()
}

// Remove deletes the entry for a genome ID, reporting whether it was
// present. Removal is the only way an entry leaves an index.
func (db *RepDB) Remove(genomeID string) bool {
	db.lock.Lock()
	defer db.lock.Unlock()

	_, ok := db.genomes[genomeID]
	delete(db.genomes, genomeID)
	return ok
}

// Get returns the entry for a genome ID, if the genome is one of the
// representatives.
func (db *RepDB) Get(genomeID string) (*RepGenome, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	g, ok := db.genomes[genomeID]
	return g, ok
}

// All returns every entry, sorted by genome ID.
func (db *RepDB) All() []*RepGenome {
	genomes := db.snapshot()
	sort.Slice(genomes, func(i, j int) bool {
		return genomes[i].GenomeID < genomes[j].GenomeID
	})
	return genomes
}

// FindClosest returns the representative most similar to the query
// protein. Ties go to the lexicographically lower genome ID, so the
// answer does not depend on how the scan was scheduled. On an empty
// index the result is neutral: no genome, similarity 0, distance 1.
func (db *RepDB) FindClosest(sequence string) Representation {
	fp := NewKmerSet(db.k, sequence)
	best := scanBest(db.snapshot(), fp)
	if best.genome == nil {
		return Representation{Distance: 1.0}
	}
	return Representation{
		GenomeID:   best.genome.GenomeID,
		Name:       best.genome.Name,
		Similarity: best.sim,
		Distance:   best.genome.Fingerprint.Distance(fp),
		Genome:     best.genome,
	}
}

// CheckSimilarity reports whether any representative's seed protein
// reaches the given similarity against the query protein. It stops at
// the first qualifying hit rather than finding the maximum.
func (db *RepDB) CheckSimilarity(sequence string, threshold int) bool {
	fp := NewKmerSet(db.k, sequence)
	return scanAtLeast(db.snapshot(), fp, threshold)
}
