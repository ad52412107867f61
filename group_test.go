package xmunch

import (
	"bytes"
	"log"
	"slices"
	"strings"
	"testing"
)

func TestAutoScore(t *testing.T) {
	g := NewAffixGroup(0, "g")
	g.AddAffix(AffixSpec{Suffix: "s", Score: 1})
	g.AddAffix(AffixSpec{Suffix: "es", Score: 2})
	g.AddAffix(AffixSpec{Suffix: "en", Score: 1, Bucket: 'a'})
	g.AddAffix(AffixSpec{Suffix: "x", Score: 5, NoAutoScore: true})

	if !g.AutoScore() {
		t.Fatal("AutoScore = false without explicit thresholds")
	}
	if s, _ := g.MinScore(DefaultBucket); s != 3 {
		t.Errorf("MinScore('*') = %d, want 3", s)
	}
	if s, ok := g.MinScore('a'); !ok || s != 1 {
		t.Errorf("MinScore('a') = %d, %v, want 1, true", s, ok)
	}
	if got := g.Buckets(); !slices.Equal(got, []rune{'*', 'a'}) {
		t.Errorf("Buckets = %q", got)
	}
}

func TestSetMinScoreStopsAutoScore(t *testing.T) {
	g := NewAffixGroup(0, "g")
	g.SetMinScore(DefaultBucket, 1)
	g.AddAffix(AffixSpec{Suffix: "s", Score: 1})
	g.AddAffix(AffixSpec{Suffix: "es", Score: 1})

	if g.AutoScore() {
		t.Error("AutoScore still on after SetMinScore")
	}
	if s, _ := g.MinScore(DefaultBucket); s != 1 {
		t.Errorf("MinScore('*') = %d, want 1", s)
	}
	if _, ok := g.MinScore('b'); ok {
		t.Error("undeclared bucket reported as declared")
	}
}

func TestGroupUnknownBucket(t *testing.T) {
	g := NewAffixGroup(0, "g")
	g.SetMinScore(DefaultBucket, 0)
	g.AddAffix(AffixSpec{Suffix: "s", Score: 1, Bucket: 'x'})

	reg := NewRegistry(0)
	for _, w := range []string{"cat", "cats", "dog", "dogs"} {
		reg.AddReal(w)
	}
	var diags bytes.Buffer
	st := g.match(reg, log.New(&diags, "", 0))

	if st.Candidates != 2 || st.BelowThreshold != 2 || st.Confirmed != 0 {
		t.Errorf("stats = %+v", st)
	}
	if n := strings.Count(diags.String(), "'x'"); n != 1 {
		t.Errorf("unknown bucket reported %d times, want once:\n%s", n, diags.String())
	}
	if reg.Real("cats").Consumed() {
		t.Error("derived word consumed by a rejected stem")
	}
}

func TestGroupBuckets(t *testing.T) {
	// one rule from each bucket is enough, but both buckets are needed
	g := NewAffixGroup(0, "g")
	g.SetMinScore('a', 1)
	g.SetMinScore('b', 1)
	g.AddAffix(AffixSpec{Suffix: "s", Score: 1, Bucket: 'a'})
	g.AddAffix(AffixSpec{Suffix: "es", Score: 1, Bucket: 'a'})
	g.AddAffix(AffixSpec{Suffix: "ed", Score: 1, Bucket: 'b'})

	reg := NewRegistry(0)
	for _, w := range []string{"walk", "walks", "walked", "box", "boxes"} {
		reg.AddReal(w)
	}
	st := g.match(reg, nil)

	if !reg.Real("walk").IsStem() {
		t.Error("walk not confirmed with both buckets")
	}
	if reg.Real("box").IsStem() {
		t.Error("box confirmed without bucket 'b'")
	}
	if st.Confirmed != 1 || st.BelowThreshold != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestGroupRunsAreIndependent(t *testing.T) {
	g := NewAffixGroup(0, "g")
	g.AddAffix(AffixSpec{Suffix: "s", Score: 1})
	g.AddAffix(AffixSpec{Suffix: "es", Score: 1})

	reg := NewRegistry(0)
	reg.AddReal("box")
	reg.AddReal("boxs")
	if st := g.match(reg, nil); st.Confirmed != 0 {
		t.Fatalf("first run confirmed %d stems", st.Confirmed)
	}

	// scores of the first run must not carry over
	reg.AddReal("boxes")
	st := g.match(reg, nil)
	if st.Confirmed != 1 {
		t.Errorf("second run stats = %+v, want box confirmed", st)
	}
}
