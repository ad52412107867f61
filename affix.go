package xmunch

import (
	"slices"
	"strings"
)

// DefaultBucket is the score bucket used when a rule or threshold names none.
const DefaultBucket = '*'

// Affix is one stripping rule of a group: a word matches when it starts
// with Prefix and ends with Suffix, and every combination of a stem
// beginning and a stem ending wrapped around the remaining core is a
// candidate stem.
type Affix struct {
	group *AffixGroup

	Prefix string
	Suffix string

	// StemBeginnings and StemEndings are never empty; [""] means the core
	// is used unchanged on that side.
	StemBeginnings []string
	StemEndings    []string

	Score  int
	Bucket rune

	// Mode is the owning group's mode at the time the rule was added.
	Mode StemType

	// autoScore marks rules that raise the group threshold while the
	// group still derives it automatically.
	autoScore bool
}

// AffixSpec describes a rule to add to a group.
type AffixSpec struct {
	Prefix         string
	Suffix         string
	StemBeginnings []string
	StemEndings    []string
	Score          int
	Bucket         rune
	// NoAutoScore keeps the rule from raising an automatic threshold.
	NoAutoScore bool
}

// Group returns the group that owns a.
func (a *Affix) Group() *AffixGroup { return a.group }

// Stems returns the candidate stem strings for w, or nil when w is not
// matchable or a does not apply to it.
func (a *Affix) Stems(w *Word) []string {
	if !w.Matchable() {
		return nil
	}
	return a.stems(w.text)
}

// stems strips Prefix and Suffix from s and wraps the core in every
// beginning × ending combination. The core must keep at least one byte of s.
func (a *Affix) stems(s string) []string {
	begin, end := 0, len(s)
	if a.Suffix != "" {
		if !strings.HasSuffix(s, a.Suffix) {
			return nil
		}
		end = len(s) - len(a.Suffix)
	}
	if a.Prefix != "" {
		if !strings.HasPrefix(s, a.Prefix) {
			return nil
		}
		begin = len(a.Prefix)
	}
	if end <= begin {
		return nil
	}

	core := s[begin:end]
	out := make([]string, 0, len(a.StemEndings)*len(a.StemBeginnings))
	for _, e := range a.StemEndings {
		for _, b := range a.StemBeginnings {
			out = append(out, b+core+e)
		}
	}
	return out
}

// match runs a against w and records every accepted candidate in run.
func (a *Affix) match(reg *Registry, run *groupRun, w *Word) {
	for _, stem := range a.Stems(w) {
		target := a.resolve(reg, stem)
		if target == nil {
			continue
		}
		target.addDerivation(a.group, a, w)
		run.count(target, a.Score, a.Bucket)
	}
}

// resolve maps a candidate string to the word it would be the stem of.
// A VIRTUAL rule never attaches to a real word and a NORMAL rule never
// synthesizes one.
func (a *Affix) resolve(reg *Registry, stem string) *Word {
	if w := reg.Real(stem); w != nil {
		if a.Mode == StemVirtual {
			return nil
		}
		return w
	}
	if a.Mode == StemNormal {
		return nil
	}
	return reg.virtualStem(stem)
}

func orEmpty(ss []string) []string {
	if len(ss) == 0 {
		return []string{""}
	}
	return slices.Clone(ss)
}
