package xmunch

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TextForm selects the Unicode normalization applied to words and affix
// strings before they are compared. Matching is byte-wise, so a word list
// and a grammar written in different forms never match unless both are
// brought to the same one.
type TextForm string

const (
	FormNone TextForm = "none"
	FormNFC  TextForm = "nfc"
	FormNFD  TextForm = "nfd"
	FormNFKC TextForm = "nfkc"
	FormNFKD TextForm = "nfkd"
)

// ParseTextForm accepts the names above, case-insensitively. The empty
// string means FormNone.
func ParseTextForm(s string) (TextForm, error) {
	switch f := TextForm(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormNone:
		return FormNone, nil
	case FormNFC, FormNFD, FormNFKC, FormNFKD:
		return f, nil
	default:
		return FormNone, fmt.Errorf("unknown normalization form %q", s)
	}
}

// Apply returns s in form f.
func (f TextForm) Apply(s string) string {
	switch f {
	case FormNFC:
		return norm.NFC.String(s)
	case FormNFD:
		return norm.NFD.String(s)
	case FormNFKC:
		return norm.NFKC.String(s)
	case FormNFKD:
		return norm.NFKD.String(s)
	default:
		return s
	}
}

func (f TextForm) applyAll(ss []string) []string {
	if f == FormNone || f == "" {
		return ss
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = f.Apply(s)
	}
	return out
}
