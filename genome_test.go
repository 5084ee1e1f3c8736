package repgen

import (
	"errors"
	"testing"
)

func TestNewRepGenomeParsesFeatureID(t *testing.T) {
	tests := []struct {
		featureID string
		genomeID  string
		ok        bool
	}{
		{"fig|1005530.3.peg.2208", "1005530.3", true},
		{"fig|83333.1.peg.4", "83333.1", true},
		{"fig|83333.1.rna.12", "83333.1", true},
		{"fig|1005530.3.2208", "", false}, // missing feature type
		{"fig|1005530.peg.2208", "", false},
		{"1005530.3.peg.2208", "", false},
		{"fig|1005530.3.peg.", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		g, err := NewRepGenome(test.featureID, "test genome", protA, 8)
		if test.ok {
			if err != nil {
				t.Fatalf("Feature ID %q should parse, got error: %s",
					test.featureID, err)
			}
			if g.GenomeID != test.genomeID {
				t.Fatalf("Feature ID %q should yield genome ID %q, got %q.",
					test.featureID, test.genomeID, g.GenomeID)
			}
			continue
		}

		if err == nil {
			t.Fatalf("Feature ID %q should not parse, but yielded genome "+
				"ID %q.", test.featureID, g.GenomeID)
		}
		var malformed *MalformedFeatureIDError
		if !errors.As(err, &malformed) {
			t.Fatalf("Feature ID %q should yield a MalformedFeatureIDError, "+
				"got %T.", test.featureID, err)
		}
		if malformed.FeatureID != test.featureID {
			t.Fatalf("Error should carry the offending feature ID %q, "+
				"got %q.", test.featureID, malformed.FeatureID)
		}
	}
}

func TestRepGenomeEquality(t *testing.T) {
	// Identity is the genome ID alone; names and fingerprints differ.
	a, err := NewRepGenome("fig|83333.1.peg.4", "Escherichia coli", protA, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRepGenome("fig|83333.1.peg.9", "E. coli K-12", protC, 8)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewRepGenome("fig|83334.2.peg.4", "Escherichia coli", protA, 8)
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equals(b) {
		t.Fatal("Entries with the same genome ID should be equal.")
	}
	if a.Equals(c) {
		t.Fatal("Entries with different genome IDs should not be equal.")
	}
	if a.Equals(nil) {
		t.Fatal("No entry equals nil.")
	}
}

func TestRepGenomeOrderingIsLexicographic(t *testing.T) {
	// Ordering is a plain string comparison: "100.1" sorts before
	// "99.1" even though 100 > 99 numerically.
	lo, err := NewRepGenome("fig|100.1.peg.1", "", protA, 8)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := NewRepGenome("fig|99.1.peg.1", "", protA, 8)
	if err != nil {
		t.Fatal(err)
	}
	if lo.Compare(hi) >= 0 {
		t.Fatalf("Genome 100.1 should order before 99.1 lexicographically, "+
			"Compare returned %d.", lo.Compare(hi))
	}
}

func TestRepGenomeDelegatesToFingerprint(t *testing.T) {
	a, err := NewRepGenome("fig|100.1.peg.1", "", protA, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRepGenome("fig|200.1.peg.1", "", protB, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a.Similarity(b) != a.Fingerprint.Similarity(b.Fingerprint) {
		t.Fatal("Entry similarity should delegate to the fingerprint.")
	}
	if a.Distance(b) != a.Fingerprint.Distance(b.Fingerprint) {
		t.Fatal("Entry distance should delegate to the fingerprint.")
	}
}
