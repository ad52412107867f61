package xmunch

// StemType classifies a word with respect to the stems it may stand for.
// The same values describe an affix group's mode.
type StemType rune

const (
	StemNormal    StemType = 'N'
	StemVirtual   StemType = 'V'
	StemOptional  StemType = 'O'
	StemCreate    StemType = 'C'
	StemUndefined StemType = 'U'
)

func (t StemType) String() string {
	switch t {
	case StemNormal:
		return "normal"
	case StemVirtual:
		return "virtual"
	case StemOptional:
		return "optional"
	case StemCreate:
		return "create"
	case StemUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// compatibleWith reports whether a word currently classified as t may be
// confirmed as a stem by a group running in the given mode.
func (t StemType) compatibleWith(mode StemType) bool {
	switch t {
	case mode, StemUndefined, StemOptional:
		return true
	case StemCreate, StemNormal:
		return mode != StemVirtual
	case StemVirtual:
		return mode == StemVirtual || mode == StemCreate
	}
	return false
}

// confirmedBy returns the classification of a t-word after a group in the
// given mode confirms it as a stem. NORMAL and VIRTUAL are sticky.
func (t StemType) confirmedBy(mode StemType) StemType {
	switch t {
	case StemNormal, StemVirtual:
		return t
	case StemCreate:
		if mode == StemOptional {
			return StemNormal
		}
		return mode
	case StemOptional:
		if mode == StemCreate {
			return StemNormal
		}
		return mode
	default:
		return mode
	}
}

// Derivation links a stem to one word it explains and the rule that did so.
type Derivation struct {
	Word  *Word
	Affix *Affix
}

// Word is a single entry of the registry. Words are only ever handled by
// pointer; the registry and every group accumulator index the same value.
type Word struct {
	text     string
	virtual  bool
	consumed bool
	stemType StemType

	// stemOf lists the groups that confirmed this word as a stem, in
	// confirmation order.
	stemOf []*AffixGroup

	// derivations maps group → words explained by this word under that group.
	derivations map[*AffixGroup][]Derivation
}

func newWord(text string, virtual bool, t StemType) *Word {
	return &Word{
		text:        text,
		virtual:     virtual,
		stemType:    t,
		derivations: make(map[*AffixGroup][]Derivation),
	}
}

// Text returns the surface string.
func (w *Word) Text() string { return w.text }

// Virtual reports whether w lives in the virtual namespace.
func (w *Word) Virtual() bool { return w.virtual }

// Consumed reports whether some group used w as a derived form.
func (w *Word) Consumed() bool { return w.consumed }

// StemType returns the current classification of w.
func (w *Word) StemType() StemType { return w.stemType }

// IsStem reports whether any group confirmed w as a stem.
func (w *Word) IsStem() bool { return len(w.stemOf) > 0 }

// StemOf returns the groups w is a stem for, in confirmation order.
func (w *Word) StemOf() []*AffixGroup { return w.stemOf }

// Matchable reports whether w may still be tested as a derived form.
func (w *Word) Matchable() bool { return len(w.stemOf) == 0 && !w.consumed }

// Derivations returns the words explained by w under group g.
func (w *Word) Derivations(g *AffixGroup) []Derivation { return w.derivations[g] }

// Forms returns the distinct texts of the words derived from w under g,
// in the order they were first recorded.
func (w *Word) Forms(g *AffixGroup) []string {
	var out []string
	seen := make(map[*Word]bool)
	for _, d := range w.derivations[g] {
		if seen[d.Word] {
			continue
		}
		seen[d.Word] = true
		out = append(out, d.Word.text)
	}
	return out
}

func (w *Word) addDerivation(g *AffixGroup, a *Affix, derived *Word) {
	w.derivations[g] = append(w.derivations[g], Derivation{Word: derived, Affix: a})
}

func (w *Word) setStemFor(g *AffixGroup) {
	for _, s := range w.stemOf {
		if s == g {
			return
		}
	}
	w.stemOf = append(w.stemOf, g)
}
