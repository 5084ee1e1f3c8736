package repgen

import "fmt"

// MalformedFeatureIDError reports a feature identifier that does not
// follow the 'fig|<genome>.<type>.<ordinal>' pattern and therefore
// cannot yield a genome ID. It always indicates bad upstream data.
type MalformedFeatureIDError struct {
	FeatureID string
}

func (e *MalformedFeatureIDError) Error() string {
	return fmt.Sprintf("malformed feature ID %q: expected "+
		"fig|<genomeID>.<type>.<ordinal>", e.FeatureID)
}

// CorruptIndexError reports a representative index file that could not
// be decoded. It is distinct from MalformedFeatureIDError so callers
// can tell a bad file from a bad identifier inside a good file.
type CorruptIndexError struct {
	Path   string
	Reason string
}

func (e *CorruptIndexError) Error() string {
	return fmt.Sprintf("corrupt representative index %q: %s", e.Path, e.Reason)
}
