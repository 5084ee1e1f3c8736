package repgen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func buildTestDB(t *testing.T) *RepDB {
	t.Helper()
	db := NewRepDB(50, DefaultSeedProtein,
		[]string{SeedProteinAliasSubunit}, 10)
	records := []SeqRecord{
		{"fig|1005530.3.peg.2208", "Dyadobacter fermentans", protA},
		{"fig|1148.1.peg.100", "Synechocystis sp.", protC},
	}
	if _, _, err := db.AddGenomes(SeqRecordChan(records)); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := buildTestDB(t)
	path := filepath.Join(t.TempDir(), "reps.db")

	if err := db.Save(path); err != nil {
		t.Fatalf("Save failed: %s", err)
	}
	loaded, err := LoadRepDB(path)
	if err != nil {
		t.Fatalf("Load failed: %s", err)
	}

	if loaded.Threshold() != db.Threshold() {
		t.Fatalf("Threshold changed across save/load: %d != %d.",
			loaded.Threshold(), db.Threshold())
	}
	if loaded.K() != db.K() {
		t.Fatalf("K changed across save/load: %d != %d.", loaded.K(), db.K())
	}
	if loaded.ProteinName() != db.ProteinName() {
		t.Fatalf("Protein name changed across save/load: %q != %q.",
			loaded.ProteinName(), db.ProteinName())
	}
	wantAliases, gotAliases := db.Aliases(), loaded.Aliases()
	if len(gotAliases) != len(wantAliases) {
		t.Fatalf("Alias count changed across save/load: %d != %d.",
			len(gotAliases), len(wantAliases))
	}
	for i := range wantAliases {
		if gotAliases[i] != wantAliases[i] {
			t.Fatalf("Alias %d changed across save/load: %q != %q.",
				i, gotAliases[i], wantAliases[i])
		}
	}

	want, got := db.All(), loaded.All()
	if len(got) != len(want) {
		t.Fatalf("Entry count changed across save/load: %d != %d.",
			len(got), len(want))
	}
	for i := range want {
		if got[i].GenomeID != want[i].GenomeID ||
			got[i].Name != want[i].Name ||
			got[i].FeatureID != want[i].FeatureID ||
			got[i].Protein != want[i].Protein {
			t.Fatalf("Entry %s changed across save/load.", want[i].GenomeID)
		}
		if got[i].Fingerprint.Similarity(want[i].Fingerprint) !=
			want[i].Fingerprint.Len() {
			t.Fatalf("Fingerprint for %s was not rebuilt faithfully.",
				want[i].GenomeID)
		}
	}

	// The loaded index must remain fully usable: its K is republished
	// to fingerprints built through it.
	rep := loaded.FindClosest(protB)
	if rep.GenomeID != "1005530.3" {
		t.Fatalf("Loaded index gave the wrong closest genome: %s.",
			rep.GenomeID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadRepDB(filepath.Join(t.TempDir(), "absent.db"))
	if err == nil {
		t.Fatal("Loading a missing file should fail.")
	}
	var corrupt *CorruptIndexError
	if errors.As(err, &corrupt) {
		t.Fatal("A missing file is an I/O failure, not a corrupt index.")
	}
}

func TestLoadNotAnIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, []byte(">fig|100.1.peg.1\nMKTAY\n"), 0666); err != nil {
		t.Fatal(err)
	}

	_, err := LoadRepDB(path)
	var corrupt *CorruptIndexError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Loading a non-index file should yield a "+
			"CorruptIndexError, got %v.", err)
	}
}

func TestLoadTruncatedIndex(t *testing.T) {
	db := buildTestDB(t)
	path := filepath.Join(t.TempDir(), "reps.db")
	if err := db.Save(path); err != nil {
		t.Fatal(err)
	}

	whole, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Chop the file at several points; every prefix must be rejected
	// as corrupt rather than yielding a partial index.
	for _, n := range []int{4, 12, 20, len(whole) / 2, len(whole) - 3} {
		if err := os.WriteFile(path, whole[:n], 0666); err != nil {
			t.Fatal(err)
		}
		_, err := LoadRepDB(path)
		var corrupt *CorruptIndexError
		if !errors.As(err, &corrupt) {
			t.Fatalf("A %d-byte prefix should load as corrupt, got %v.",
				n, err)
		}
	}
}
