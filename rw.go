package repgen

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// On-disk layout of a representative index, all integers big-endian:
// an 8-byte magic, a format version, then K, the threshold, the
// protein name, the alias list, and finally the entries as
// (featureID, name, residues) triples in genome ID order. Strings are
// a uint32 length followed by raw bytes. Fingerprints are not stored;
// they are rebuilt from the residues on load.
const indexVersion = 1

var indexMagic = [8]byte{'R', 'E', 'P', 'G', 'E', 'N', 'D', 'B'}

// Refuse to allocate for absurd lengths when decoding; a length this
// large means the file is not an index.
const maxFieldLen = 1 << 28

// Save writes the index to a single file: threshold, K, protein
// name and aliases, and every entry. The file handle is closed on all
// exit paths.
func (db *RepDB) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create index file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(indexMagic[:]); err != nil {
		return fmt.Errorf("could not write index header: %w", err)
	}
	for _, v := range []uint32{indexVersion, uint32(db.k), uint32(db.threshold)} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return fmt.Errorf("could not write index header: %w", err)
		}
	}
	if err := writeString(w, db.proteinName); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(db.aliases))); err != nil {
		return fmt.Errorf("could not write alias count: %w", err)
	}
	for _, alias := range db.aliases {
		if err := writeString(w, alias); err != nil {
			return err
		}
	}

	genomes := db.All()
	if err := binary.Write(w, binary.BigEndian, uint32(len(genomes))); err != nil {
		return fmt.Errorf("could not write entry count: %w", err)
	}
	for _, g := range genomes {
		for _, s := range []string{g.FeatureID, g.Name, g.Protein} {
			if err := writeString(w, s); err != nil {
				return err
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not flush index file: %w", err)
	}
	return nil
}

// LoadRepDB reads an index saved by Save and reconstructs it:
// same threshold, same K, same protein name and aliases, same entries.
// Fingerprints are rebuilt with the stored K, so sets created through
// the loaded index remain comparable with its entries.
//
// A file that is not an index, or is truncated, yields a
// *CorruptIndexError; a bad feature ID inside an otherwise readable
// file yields a *MalformedFeatureIDError. No partially built index is
// ever returned.
func LoadRepDB(path string) (*RepDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open index file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, corrupt(path, "missing file header")
	}
	if magic != indexMagic {
		return nil, corrupt(path, "not a representative index file")
	}

	var version, k, threshold uint32
	for _, v := range []*uint32{&version, &k, &threshold} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return nil, corrupt(path, "truncated file header")
		}
	}
	if version != indexVersion {
		return nil, corrupt(path,
			fmt.Sprintf("unsupported format version %d", version))
	}
	if k < 1 {
		return nil, corrupt(path, "stored K-mer size is zero")
	}

	proteinName, err := readString(r, path)
	if err != nil {
		return nil, err
	}
	var aliasCount uint32
	if err := binary.Read(r, binary.BigEndian, &aliasCount); err != nil {
		return nil, corrupt(path, "truncated alias list")
	}
	if aliasCount > maxFieldLen {
		return nil, corrupt(path, "implausible alias count")
	}
	aliases := make([]string, aliasCount)
	for i := range aliases {
		if aliases[i], err = readString(r, path); err != nil {
			return nil, err
		}
	}

	db := NewRepDB(int(threshold), proteinName, aliases, int(k))

	var entryCount uint32
	if err := binary.Read(r, binary.BigEndian, &entryCount); err != nil {
		return nil, corrupt(path, "truncated entry count")
	}
	if entryCount > maxFieldLen {
		return nil, corrupt(path, "implausible entry count")
	}
	for i := uint32(0); i < entryCount; i++ {
		var featureID, name, protein string
		for _, s := range []*string{&featureID, &name, &protein} {
			if *s, err = readString(r, path); err != nil {
				return nil, err
			}
		}
		g, err := NewRepGenome(featureID, name, protein, int(k))
		if err != nil {
			return nil, err
		}
		// The saved entries were already curated, so they go in
		// without a threshold check.
		db.AddRep(g)
	}

	return db, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return fmt.Errorf("could not write string length: %w", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("could not write string: %w", err)
	}
	return nil
}

func readString(r io.Reader, path string) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", corrupt(path, "truncated string length")
	}
	if n > maxFieldLen {
		return "", corrupt(path, "implausible string length")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", corrupt(path, "truncated string")
	}
	return string(buf), nil
}

func corrupt(path, reason string) error {
	return &CorruptIndexError{Path: path, Reason: reason}
}
