package xmunch

import (
	"strings"
	"testing"
)

func TestParseTextForm(t *testing.T) {
	tests := []struct {
		in   string
		want TextForm
		ok   bool
	}{
		{"", FormNone, true},
		{"none", FormNone, true},
		{"NFC", FormNFC, true},
		{" nfd ", FormNFD, true},
		{"nfkc", FormNFKC, true},
		{"nfkd", FormNFKD, true},
		{"utf8", FormNone, false},
	}
	for _, tt := range tests {
		got, err := ParseTextForm(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseTextForm(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTextFormApply(t *testing.T) {
	const composed, decomposed = "caf\u00e9", "cafe\u0301"
	tests := []struct {
		form TextForm
		in   string
		want string
	}{
		{FormNone, decomposed, decomposed},
		{FormNFC, decomposed, composed},
		{FormNFD, composed, decomposed},
		{FormNFKC, "\ufb01n", "fin"},
		{FormNFKD, "\ufb01n\u00e9", "fine\u0301"},
	}
	for _, tt := range tests {
		if got := tt.form.Apply(tt.in); got != tt.want {
			t.Errorf("%s.Apply(%q) = %q, want %q", tt.form, tt.in, got, tt.want)
		}
	}
}

func TestMunchNormalized(t *testing.T) {
	p := Parser{Form: FormNFC}
	g, err := p.Parse(strings.NewReader("W/AA!\nplural {\n\t. s\n}\n"))
	if err != nil {
		t.Fatal(err)
	}
	d := New(g)
	d.Form = FormNFC
	d.Add("cafe\u0301", "caf\u00e9s")
	d.Munch()
	if got, want := compressed(t, d), "caf\u00e9/plural\n"; got != want {
		t.Errorf("compressed = %q, want %q", got, want)
	}
}
