package repgen

import (
	"runtime"
	"sync"
)

// A Representation is the answer to a closest-representative query:
// which genome in the index looks most like the query protein, and how
// close it is. A query against an empty index yields the zero genome
// ID, similarity 0 and the maximal distance 1.
type Representation struct {
	GenomeID   string
	Name       string
	Similarity int
	Distance   float64
	Genome     *RepGenome
}

// hit is the partial result folded over during a parallel scan.
type hit struct {
	genome *RepGenome
	sim    int
}

// better merges two partial scan results: higher similarity wins, and
// a tie goes to the lexicographically lower genome ID. The merge is
// associative and commutative, so a parallel fold produces the same
// answer no matter how the entries are split among goroutines.
func better(a, b hit) hit {
	switch {
	case a.genome == nil:
		return b
	case b.genome == nil:
		return a
	case b.sim > a.sim:
		return b
	case b.sim < a.sim:
		return a
	case b.genome.GenomeID < a.genome.GenomeID:
		return b
	}
	return a
}

// scanBest finds the genome most similar to the query fingerprint.
// The scan fans out over the CPUs and each worker folds its share of
// the entries into a partial hit; the partials are merged with better.
// Small inputs are scanned inline.
func scanBest(genomes []*RepGenome, fp KmerSet) hit {
	workers := runtime.NumCPU()
	if workers > len(genomes) {
		workers = len(genomes)
	}
	if workers <= 1 {
		var best hit
		for _, g := range genomes {
			best = better(best, hit{g, g.Fingerprint.Similarity(fp)})
		}
		return best
	}

	parts := make(chan hit, workers)
	wg := &sync.WaitGroup{}
	chunk := (len(genomes) + workers - 1) / workers
	for lo := 0; lo < len(genomes); lo += chunk {
		hi := lo + chunk
		if hi > len(genomes) {
			hi = len(genomes)
		}
		wg.Add(1)
		go func(part []*RepGenome) {
			var best hit
			for _, g := range part {
				best = better(best, hit{g, g.Fingerprint.Similarity(fp)})
			}
			parts <- best
			wg.Done()
		}(genomes[lo:hi])
	}
	wg.Wait()
	close(parts)

	var best hit
	for part := range parts {
		best = better(best, part)
	}
	return best
}

// scanAtLeast reports whether any genome's similarity to the query
// fingerprint reaches the threshold. Unlike scanBest it does not need
// the maximum: workers quit as soon as any of them finds a qualifying
// hit.
func scanAtLeast(genomes []*RepGenome, fp KmerSet, threshold int) bool {
	workers := runtime.NumCPU()
	if workers > len(genomes) {
		workers = len(genomes)
	}
	if workers <= 1 {
		for _, g := range genomes {
			if g.Fingerprint.Similarity(fp) >= threshold {
				return true
			}
		}
		return false
	}

	found := make(chan struct{})
	var once sync.Once
	wg := &sync.WaitGroup{}
	chunk := (len(genomes) + workers - 1) / workers
	for lo := 0; lo < len(genomes); lo += chunk {
		hi := lo + chunk
		if hi > len(genomes) {
			hi = len(genomes)
		}
		wg.Add(1)
		go func(part []*RepGenome) {
			defer wg.Done()
			for _, g := range part {
				select {
				case <-found:
					return
				default:
				}
				if g.Fingerprint.Similarity(fp) >= threshold {
					once.Do(func() { close(found) })
					return
				}
			}
		}(genomes[lo:hi])
	}
	wg.Wait()

	select {
	case <-found:
		return true
	default:
		return false
	}
}
