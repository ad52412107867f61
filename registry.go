package xmunch

import "slices"

// Registry owns every Word. Words are allocated once and kept behind
// pointers, so growing the arena never moves an entry that an index or a
// group accumulator already refers to.
type Registry struct {
	// words is the creation sequence across both namespaces.
	words []*Word

	// real maps surface text → word from the input list.
	real map[string]*Word

	// virtual maps surface text → synthesized stem.
	virtual map[string]*Word
}

// maxSizeHint bounds the preallocation requested by a size hint. Larger
// registries still grow on demand.
const maxSizeHint = 1 << 20

// NewRegistry returns an empty registry sized for about sizeHint words.
func NewRegistry(sizeHint int) *Registry {
	sizeHint = max(0, min(sizeHint, maxSizeHint))
	return &Registry{
		words:   make([]*Word, 0, sizeHint),
		real:    make(map[string]*Word, sizeHint),
		virtual: make(map[string]*Word),
	}
}

// AddReal returns the real word for text, creating it if needed.
func (r *Registry) AddReal(text string) *Word {
	if w, ok := r.real[text]; ok {
		return w
	}
	w := newWord(text, false, StemNormal)
	r.real[text] = w
	r.words = append(r.words, w)
	return w
}

// Real looks up a word in the real namespace.
func (r *Registry) Real(text string) *Word { return r.real[text] }

// Virtual looks up a word in the virtual namespace.
func (r *Registry) Virtual(text string) *Word { return r.virtual[text] }

// virtualStem returns the virtual word for text, synthesizing an
// UNDEFINED placeholder on first use.
func (r *Registry) virtualStem(text string) *Word {
	if w, ok := r.virtual[text]; ok {
		return w
	}
	w := newWord(text, true, StemUndefined)
	r.virtual[text] = w
	r.words = append(r.words, w)
	return w
}

// demote drops the real word for text from the real index and the arena
// and returns the virtual word that replaces it. Derivation edges that
// still point at the dropped entity keep it alive but it is no longer
// listed.
func (r *Registry) demote(text string) *Word {
	if old, ok := r.real[text]; ok {
		delete(r.real, text)
		r.words = slices.DeleteFunc(r.words, func(w *Word) bool { return w == old })
	}
	return r.virtualStem(text)
}

// Words returns every registered word in creation order. The slice is
// shared; callers must not modify it.
func (r *Registry) Words() []*Word { return r.words }

// Len returns the number of registered words in both namespaces.
func (r *Registry) Len() int { return len(r.words) }

// RealLen returns the number of words in the real namespace.
func (r *Registry) RealLen() int { return len(r.real) }
