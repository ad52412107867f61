// Package xmunch compresses a word list into stems annotated with the affix
// groups that explain their derived forms, the way spell-checker dictionary
// munchers do, and reads the uncompressed listing back for round trips.
//
// The uncompressed listing leaves stems out of the derived-word blocks of
// other stems. A stem that some group also consumed as a derived word is
// therefore reloaded as unconsumed, and the compressed output of a reloaded
// listing lists it where a direct run would not. The uncompressed listing
// itself round-trips unchanged.
package xmunch

import "log"

// Dictionary holds the words being munched and the grammar that munches
// them, and provides the public API.
type Dictionary struct {
	// words owns every Word, real and virtual.
	words *Registry

	grammar *Grammar

	// markers override the grammar header markers when set.
	markers *Markers

	// Logger receives diagnostics about malformed input and configuration
	// errors. nil means no logging.
	Logger *log.Logger

	// Form is applied to every word read from a word list or premunched
	// listing. It should match the form the grammar was parsed with.
	Form TextForm
}

// New returns an empty dictionary munched by g.
func New(g *Grammar) *Dictionary {
	return &Dictionary{
		words:   NewRegistry(0),
		grammar: g,
		Form:    FormNone,
	}
}

// Words returns the registry of d.
func (d *Dictionary) Words() *Registry { return d.words }

// Grammar returns the grammar d was created with.
func (d *Dictionary) Grammar() *Grammar { return d.grammar }

// Markers returns the markers used by the compressed writer: the override
// set with SetMarkers, else the grammar's, else DefaultMarkers.
func (d *Dictionary) Markers() Markers {
	switch {
	case d.markers != nil:
		return *d.markers
	case d.grammar != nil:
		return d.grammar.Markers
	default:
		return DefaultMarkers()
	}
}

// SetMarkers overrides the grammar markers for output.
func (d *Dictionary) SetMarkers(m Markers) { d.markers = &m }

// groups returns the grammar's groups in declaration order.
func (d *Dictionary) groups() []*AffixGroup {
	if d.grammar == nil {
		return nil
	}
	return d.grammar.Groups
}
