package xmunch

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

const basicAffixes = "W/A,A!\nplural (1) {\n\t. s\n\ty ies\n}\npast (c) {\n\t. ed\n}\nnegation (v) {\n\t. un:\n}\n"

func premunchedDictionary(t *testing.T, src string) (*Dictionary, *bytes.Buffer) {
	t.Helper()
	g, err := ParseGrammar(strings.NewReader(basicAffixes))
	if err != nil {
		t.Fatalf("ParseGrammar: %v", err)
	}
	var diags bytes.Buffer
	d := New(g)
	d.Logger = log.New(&diags, "", 0)
	if err := d.LoadPremunched(strings.NewReader(src)); err != nil {
		t.Fatalf("LoadPremunched: %v", err)
	}
	return d, &diags
}

func TestUncompressedRoundTrip(t *testing.T) {
	d := loadBasic(t)
	d.Munch()
	first := uncompressed(t, d)

	re, diags := premunchedDictionary(t, first)
	if diags.Len() > 0 {
		t.Errorf("diagnostics on own output:\n%s", diags)
	}
	second := uncompressed(t, re)
	if second != first {
		t.Errorf("round trip changed the listing:\n%s\nwant:\n%s", second, first)
	}

	want, err := os.ReadFile("testdata/basic.compressed")
	if err != nil {
		t.Fatal(err)
	}
	if got := compressed(t, re); got != string(want) {
		t.Errorf("compressed after reload:\n%s\nwant:\n%s", got, want)
	}

	re.Munch()
	if third := uncompressed(t, re); third != first {
		t.Errorf("munching a reloaded listing changed it:\n%s", third)
	}
}

func TestUncompressedRoundTripCreateOptional(t *testing.T) {
	d := newTestDictionary(t, "W/A,A!\nA (c) {\n\t. s\n}\nB (o) {\n\t. ed\n}\n", "walks", "walked")
	d.Munch()
	first := uncompressed(t, d)
	if want := "walk {\n\tA { walks }\n\tB { walked }\n};\n"; first != want {
		t.Fatalf("uncompressed = %q, want %q", first, want)
	}

	re := New(d.Grammar())
	if err := re.LoadPremunched(strings.NewReader(first)); err != nil {
		t.Fatal(err)
	}
	if second := uncompressed(t, re); second != first {
		t.Errorf("round trip = %q, want %q", second, first)
	}
}

func TestLoadPremunchedDemotesRealWord(t *testing.T) {
	d, _ := premunchedDictionary(t, "happy;\nunhappy;\nhappy@V {\n\tnegation { unhappy }\n};\n")

	reg := d.Words()
	if reg.Real("happy") != nil {
		t.Error("'happy' still in the real namespace")
	}
	happy := reg.Virtual("happy")
	if happy == nil || happy.StemType() != StemVirtual {
		t.Fatalf("virtual happy = %+v", happy)
	}
	for _, w := range reg.Words() {
		if w.Text() == "happy" && !w.Virtual() {
			t.Error("demoted word still listed")
		}
	}
	if got, want := uncompressed(t, d), "happy@V {\n\tnegation { unhappy }\n};\n"; got != want {
		t.Errorf("uncompressed = %q, want %q", got, want)
	}
	if got := d.RealWords(); len(got) != 1 || got[0] != "unhappy" {
		t.Errorf("RealWords = %q, want [unhappy]", got)
	}
}

func TestLoadPremunchedTags(t *testing.T) {
	tests := []struct {
		src     string
		word    string
		virtual bool
		want    StemType
	}{
		{"a@v;", "a", true, StemVirtual},
		{"a@O;", "a", true, StemOptional},
		{"a@c;", "a", false, StemCreate},
		{"a@N;", "a", false, StemNormal},
		{"a;", "a", false, StemNormal},
		// a real word cannot be optional or created
		{"a;\na@O;", "a", false, StemNormal},
		{"a;\na@C;", "a", false, StemNormal},
	}
	for _, tt := range tests {
		d, diags := premunchedDictionary(t, tt.src)
		var w *Word
		if tt.virtual {
			w = d.Words().Virtual(tt.word)
		} else {
			w = d.Words().Real(tt.word)
		}
		if w == nil {
			t.Errorf("%q: word %q not found (virtual=%v)", tt.src, tt.word, tt.virtual)
			continue
		}
		if w.StemType() != tt.want {
			t.Errorf("%q: type = %v, want %v", tt.src, w.StemType(), tt.want)
		}
		if diags.Len() > 0 {
			t.Errorf("%q: unexpected diagnostics %q", tt.src, diags)
		}
	}
}

func TestLoadPremunchedUnknownGroup(t *testing.T) {
	d, diags := premunchedDictionary(t, "cat {\n\tbogus { cats }\n\tplural { cats }\n};\ndog;\n")

	if !strings.Contains(diags.String(), ErrUnknownGroup.Error()) {
		t.Errorf("diagnostics = %q, want an unknown group report", diags)
	}
	cat := d.Words().Real("cat")
	if cat == nil || len(cat.StemOf()) != 1 || cat.StemOf()[0].Name != "plural" {
		t.Fatalf("cat stem of %v, want [plural]", cat.StemOf())
	}
	if got, want := uncompressed(t, d), "cat {\n\tplural { cats }\n};\ndog;\n"; got != want {
		t.Errorf("uncompressed = %q, want %q", got, want)
	}
}

func TestLoadPremunchedMalformed(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		words []string
	}{
		{"missing semicolon", "cat\ndog;\n", []string{"cat", "dog"}},
		{"bad tag", "cat@x;\ndog;", []string{"cat", "dog"}},
		{"stray brace", "};\ncat;", []string{"cat"}},
		{"missing group brace", "cat {\n\tplural cats }\n};\n", []string{"cat", "cats"}},
		{"comment", "# header\ncat; # trailing\n", []string{"cat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, diags := premunchedDictionary(t, tt.src)
			got := d.RealWords()
			if strings.Join(got, " ") != strings.Join(tt.words, " ") {
				t.Errorf("words = %q, want %q", got, tt.words)
			}
			t.Logf("diagnostics: %q", diags)
		})
	}
}

func TestLoadPremunchedLinkHasNoScore(t *testing.T) {
	d, _ := premunchedDictionary(t, "cat {\n\tplural { cats }\n};\n")
	cat := d.Words().Real("cat")
	g := d.Grammar().Group("plural")
	ds := cat.Derivations(g)
	if len(ds) != 1 {
		t.Fatalf("derivations = %d, want 1", len(ds))
	}
	if ds[0].Affix.Score != 0 || ds[0].Affix.Group() != g {
		t.Errorf("link rule = %+v", ds[0].Affix)
	}
	for _, a := range g.Affixes() {
		if a == ds[0].Affix {
			t.Error("link rule added to the group")
		}
	}
	if !d.Words().Real("cats").Consumed() {
		t.Error("derived word not consumed")
	}
}

func TestWriteWordList(t *testing.T) {
	d, _ := premunchedDictionary(t, string(mustRead(t, "testdata/basic.uncompressed")))
	var buf bytes.Buffer
	if err := d.WriteWordList(&buf); err != nil {
		t.Fatal(err)
	}
	want := "8\ncat\ncats\ncity\ncities\ndog\nwalk\nwalked\nunhappy\n"
	if buf.String() != want {
		t.Errorf("WriteWordList = %q, want %q", buf.String(), want)
	}
}

func TestCompressedLine(t *testing.T) {
	g1 := NewAffixGroup(0, "a")
	g2 := NewAffixGroup(1, "b")
	m := Markers{StemSeparator: "/", NameSeparator: ",", VirtualMarker: "!"}

	plain := newWord("dog", false, StemNormal)
	stem := newWord("cat", false, StemNormal)
	stem.setStemFor(g1)
	stem.setStemFor(g2)
	stem.setStemFor(g1)
	opt := newWord("walk", true, StemOptional)
	opt.setStemFor(g2)

	tests := []struct {
		w    *Word
		want string
	}{
		{plain, "dog"},
		{stem, "cat/a,b"},
		{opt, "walk/b,!"},
	}
	for _, tt := range tests {
		if got := compressedLine(tt.w, m); got != tt.want {
			t.Errorf("compressedLine(%s) = %q, want %q", tt.w.Text(), got, tt.want)
		}
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestReloadForgetsConsumedStem(t *testing.T) {
	d := newTestDictionary(t, "W/A,A!\nb {\n\t. un:\n}\na {\n\t. d\n}\n", "uncatd", "uncat", "cat")
	d.Munch()
	if !d.Words().Real("uncat").Consumed() || !d.Words().Real("uncat").IsStem() {
		t.Fatal("uncat should be both a stem and consumed")
	}
	if got, want := compressed(t, d), "cat/b\n"; got != want {
		t.Errorf("compressed = %q, want %q", got, want)
	}
	listing := uncompressed(t, d)
	if want := "uncat {\n\ta { uncatd }\n};\ncat {\n\tb { }\n};\n"; listing != want {
		t.Fatalf("uncompressed = %q, want %q", listing, want)
	}

	re := New(d.Grammar())
	if err := re.LoadPremunched(strings.NewReader(listing)); err != nil {
		t.Fatal(err)
	}
	if got := uncompressed(t, re); got != listing {
		t.Errorf("round trip = %q, want %q", got, listing)
	}
	// the listing does not record that uncat was derived from cat
	if got, want := compressed(t, re), "uncat/a\ncat/b\n"; got != want {
		t.Errorf("compressed after reload = %q, want %q", got, want)
	}
}
