package xmunch

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownGroup is reported when a premunched block names a group the
// grammar does not declare. The block is skipped; loading continues.
var ErrUnknownGroup = errors.New("unknown affix group")

// stemLetters maps group flags and the letter after '@' in premunched
// listings to a stem classification.
var stemLetters = map[byte]StemType{
	'v': StemVirtual, 'V': StemVirtual,
	'o': StemOptional, 'O': StemOptional,
	'c': StemCreate, 'C': StemCreate,
	'n': StemNormal, 'N': StemNormal,
}

// premunchedReader rebuilds registry state from an uncompressed listing.
type premunchedReader struct {
	cursor
	d *Dictionary

	// links holds one zero-score rule per group, used only to record
	// stem → derived edges.
	links map[*AffixGroup]*Affix
}

// LoadPremunched reads an uncompressed listing as written by
// WriteUncompressed, or a hand-edited version of it, into d.
//
// A word tagged @V that already exists as a real word is moved to the
// virtual namespace. A word tagged @V or @O that is not a real word is
// created as a virtual stem; any other new word, @C included, is real.
// Malformed records are logged and skipped.
func (d *Dictionary) LoadPremunched(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read premunched: %w", err)
	}
	p := &premunchedReader{
		cursor: cursor{src: string(data)},
		d:      d,
		links:  make(map[*AffixGroup]*Affix),
	}
	p.load()
	return nil
}

func (p *premunchedReader) load() {
	p.skipWhite()
	for !p.eof() {
		w := p.loadWord()
		if w == nil {
			p.logf("premunched: unexpected %q", p.next())
			p.skipWhite()
			continue
		}
		p.skipWhite()

		if p.peek() == '{' {
			p.next()
			p.loadDerived(w)
			p.skipWhite()
		}
		if c := p.peek(); c == ';' {
			p.next()
		} else {
			p.logf("premunched: expected ';', got %q near %q", c, w.text)
		}
		p.skipWhite()
	}
}

// loadWord reads a word and its optional tag and returns the entity it
// names, or nil when no word starts here.
func (p *premunchedReader) loadWord() *Word {
	text := p.readWord()
	if text == "" {
		return nil
	}
	text = p.d.Form.Apply(text)

	t := StemNormal
	if p.peek() == '@' {
		p.next()
		c := p.next()
		tt, ok := stemLetters[c]
		if !ok {
			p.logf("premunched: expected @V, @O, @C or @N near %q", text)
		} else {
			t = tt
		}
	}

	reg := p.d.words
	var w *Word
	switch {
	case reg.Real(text) != nil && t == StemVirtual:
		w = reg.demote(text)
	case reg.Real(text) != nil:
		w = reg.Real(text)
		if t == StemOptional || t == StemCreate {
			t = StemNormal
		}
	case t == StemVirtual || t == StemOptional:
		w = reg.virtualStem(text)
	default:
		w = reg.AddReal(text)
	}
	w.stemType = t
	return w
}

func (p *premunchedReader) readWord() string {
	return p.token(func(b byte) bool {
		switch b {
		case '#', ';', ',', '@', ':', '{', '}', '"':
			return true
		}
		return b <= ' '
	})
}

// loadDerived reads `group { word ... } ... }` after the opening brace of
// a stem record.
func (p *premunchedReader) loadDerived(stem *Word) {
	p.skipWhite()
	for !p.eof() && p.peek() != '}' {
		name := p.readWord()
		g := p.d.grammar.Group(name)
		if g == nil {
			skipped := p.skipPast('}')
			p.logf("premunched: %v %q near %q, ignored %q", ErrUnknownGroup, name, stem.text, skipped)
			p.skipWhite()
			continue
		}
		stem.setStemFor(g)

		p.skipWhite()
		if p.peek() == '{' {
			p.next()
		} else {
			p.logf("premunched: expected '{' after %q", name)
		}

		p.skipWhite()
		for !p.eof() && p.peek() != '}' {
			text := p.readWord()
			if text == "" {
				p.logf("premunched: unexpected %q in %q of %q", p.next(), name, stem.text)
				p.skipWhite()
				continue
			}
			derived := p.d.words.AddReal(p.d.Form.Apply(text))
			derived.consumed = true
			stem.addDerivation(g, p.link(g), derived)
			p.skipWhite()
		}
		p.next()
		p.skipWhite()
	}
	p.next()
}

// link returns the zero-score rule recording derivations under g. It is
// not part of g's rules and never affects scoring.
func (p *premunchedReader) link(g *AffixGroup) *Affix {
	a, ok := p.links[g]
	if !ok {
		a = &Affix{
			group:          g,
			StemBeginnings: []string{""},
			StemEndings:    []string{""},
			Bucket:         DefaultBucket,
			Mode:           g.mode,
		}
		p.links[g] = a
	}
	return a
}

func (p *premunchedReader) logf(format string, args ...any) {
	logf(p.d.Logger, format, args...)
}
