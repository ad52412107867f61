package xmunch

import (
	"log"
	"slices"
)

// AffixGroup is a named, ordered set of rules that share score thresholds
// and a stem mode. A word is confirmed as a stem of the group when the
// scores its derived forms collect reach every threshold.
type AffixGroup struct {
	ID   int
	Name string

	mode StemType

	// minScore maps bucket → threshold. The default bucket always exists.
	minScore map[rune]int

	// autoScore is true until a threshold is set explicitly; while it
	// holds, adding a rule raises the threshold of its bucket.
	autoScore bool

	affixes []*Affix
}

// NewAffixGroup returns an empty NORMAL group with automatic thresholds.
func NewAffixGroup(id int, name string) *AffixGroup {
	return &AffixGroup{
		ID:        id,
		Name:      name,
		mode:      StemNormal,
		minScore:  map[rune]int{DefaultBucket: 0},
		autoScore: true,
	}
}

// Mode returns the stem mode of g.
func (g *AffixGroup) Mode() StemType { return g.mode }

// SetMode changes the mode used by rules added from now on.
func (g *AffixGroup) SetMode(m StemType) { g.mode = m }

// AutoScore reports whether thresholds are still derived from the rules.
func (g *AffixGroup) AutoScore() bool { return g.autoScore }

// SetMinScore sets the threshold of bucket and stops automatic thresholds
// for the whole group.
func (g *AffixGroup) SetMinScore(bucket rune, score int) {
	g.autoScore = false
	g.minScore[bucket] = score
}

// MinScore returns the threshold of bucket and whether it is declared.
func (g *AffixGroup) MinScore(bucket rune) (int, bool) {
	s, ok := g.minScore[bucket]
	return s, ok
}

// Buckets returns the declared buckets in ascending order.
func (g *AffixGroup) Buckets() []rune {
	out := make([]rune, 0, len(g.minScore))
	for b := range g.minScore {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}

// Affixes returns the rules of g in declaration order.
func (g *AffixGroup) Affixes() []*Affix { return g.affixes }

// AddAffix appends a rule built from spec. Empty replacement lists become
// [""] and a zero bucket becomes DefaultBucket.
func (g *AffixGroup) AddAffix(spec AffixSpec) *Affix {
	bucket := spec.Bucket
	if bucket == 0 {
		bucket = DefaultBucket
	}
	a := &Affix{
		group:          g,
		Prefix:         spec.Prefix,
		Suffix:         spec.Suffix,
		StemBeginnings: orEmpty(spec.StemBeginnings),
		StemEndings:    orEmpty(spec.StemEndings),
		Score:          spec.Score,
		Bucket:         bucket,
		Mode:           g.mode,
		autoScore:      !spec.NoAutoScore,
	}
	g.affixes = append(g.affixes, a)
	if g.autoScore && a.autoScore {
		g.minScore[bucket] += a.Score
	}
	return a
}

// GroupStats summarizes one group's pass over the registry.
type GroupStats struct {
	Name           string `json:"name"`
	Candidates     int    `json:"candidates"`
	Confirmed      int    `json:"confirmed"`
	Incompatible   int    `json:"incompatible"`
	BelowThreshold int    `json:"below_threshold"`
}

// groupRun is the score accumulator of a single pass of one group.
type groupRun struct {
	group  *AffixGroup
	scores map[*Word]map[rune]int
	// order lists candidates in the order they first scored.
	order []*Word
}

func newGroupRun(g *AffixGroup) *groupRun {
	return &groupRun{group: g, scores: make(map[*Word]map[rune]int)}
}

func (run *groupRun) count(stem *Word, score int, bucket rune) {
	s, ok := run.scores[stem]
	if !ok {
		s = make(map[rune]int, len(run.group.minScore))
		for b := range run.group.minScore {
			s[b] = 0
		}
		run.scores[stem] = s
		run.order = append(run.order, stem)
	}
	s[bucket] += score
}

// match runs every rule of g against every matchable real word, then
// confirms the candidates that are compatible with the group mode and
// reach all thresholds.
func (g *AffixGroup) match(reg *Registry, logger *log.Logger) GroupStats {
	run := newGroupRun(g)
	for _, w := range reg.Words() {
		if w.virtual {
			continue
		}
		for _, a := range g.affixes {
			a.match(reg, run, w)
		}
	}

	st := GroupStats{Name: g.Name, Candidates: len(run.order)}
	reported := make(map[rune]bool)
	for _, stem := range run.order {
		if !stem.stemType.compatibleWith(g.mode) {
			st.Incompatible++
			continue
		}
		if !g.reaches(run.scores[stem], logger, reported) {
			st.BelowThreshold++
			continue
		}
		g.confirm(stem)
		st.Confirmed++
	}
	return st
}

// reaches reports whether every bucket in scores meets its threshold.
// A bucket without a threshold is a configuration error and fails.
func (g *AffixGroup) reaches(scores map[rune]int, logger *log.Logger, reported map[rune]bool) bool {
	buckets := make([]rune, 0, len(scores))
	for b := range scores {
		buckets = append(buckets, b)
	}
	slices.Sort(buckets)

	for _, b := range buckets {
		need, ok := g.minScore[b]
		if !ok {
			if !reported[b] {
				reported[b] = true
				logf(logger, "group %q: score bucket %q has no minimum score", g.Name, b)
			}
			return false
		}
		if scores[b] < need {
			return false
		}
	}
	return true
}

func (g *AffixGroup) confirm(stem *Word) {
	stem.setStemFor(g)
	stem.stemType = stem.stemType.confirmedBy(g.mode)
	for _, d := range stem.derivations[g] {
		d.Word.consumed = true
	}
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
