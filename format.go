package xmunch

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Markers are the separators written into compressed output. They come
// from the grammar header and may be overridden by configuration.
type Markers struct {
	// StemSeparator follows a stem and precedes its group names.
	StemSeparator string `json:"stem_separator"`
	// NameSeparator is written between two group names.
	NameSeparator string `json:"name_separator"`
	// VirtualMarker flags stems that are not real words.
	VirtualMarker string `json:"virtual_marker"`
}

// DefaultMarkers returns the markers used when a grammar declares none.
func DefaultMarkers() Markers {
	return Markers{StemSeparator: "/", NameSeparator: "", VirtualMarker: "!"}
}

// typeTags maps a stem classification to its tag in uncompressed output.
var typeTags = map[StemType]string{
	StemVirtual:  "@V",
	StemOptional: "@O",
	StemCreate:   "@C",
}

// compressedLine formats a surviving word: the text, then for stems the
// stem separator, the group names and, for virtual or optional stems, the
// virtual marker.
func compressedLine(w *Word, m Markers) string {
	if !w.IsStem() {
		return w.text
	}
	var sb strings.Builder
	sb.WriteString(w.text)
	sb.WriteString(m.StemSeparator)
	for i, g := range w.stemOf {
		if i > 0 {
			sb.WriteString(m.NameSeparator)
		}
		sb.WriteString(g.Name)
	}
	if w.stemType == StemVirtual || w.stemType == StemOptional {
		sb.WriteString(m.NameSeparator)
		sb.WriteString(m.VirtualMarker)
	}
	return sb.String()
}

// WriteCompressed writes one line per unconsumed real word and per
// confirmed virtual stem.
func (d *Dictionary) WriteCompressed(out io.Writer) error {
	bw := bufio.NewWriter(out)
	m := d.Markers()
	for _, w := range d.words.Words() {
		if w.virtual && !w.IsStem() || !w.virtual && w.consumed {
			continue
		}
		bw.WriteString(compressedLine(w, m))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteUncompressed writes one record per stem and per unconsumed word:
//
//	stem[@T] {
//		group { derived derived }
//	};
//	word;
//
// Derived words that are stems themselves have their own record and are
// left out of the lists. The output can be read back with LoadPremunched.
func (d *Dictionary) WriteUncompressed(out io.Writer) error {
	bw := bufio.NewWriter(out)
	for _, w := range d.words.Words() {
		if !w.IsStem() && (w.virtual || w.consumed) {
			continue
		}
		bw.WriteString(w.text)
		if !w.IsStem() {
			bw.WriteString(";\n")
			continue
		}
		bw.WriteString(typeTags[w.stemType])
		bw.WriteString(" {\n")
		for _, g := range w.stemOf {
			bw.WriteString("\t")
			bw.WriteString(g.Name)
			bw.WriteString(" {")
			for _, f := range immediateForms(w, g) {
				bw.WriteByte(' ')
				bw.WriteString(f)
			}
			bw.WriteString(" }\n")
		}
		bw.WriteString("};\n")
	}
	return bw.Flush()
}

// immediateForms returns the distinct derived words of stem under g that
// are not stems themselves.
func immediateForms(stem *Word, g *AffixGroup) []string {
	var out []string
	seen := make(map[*Word]bool)
	for _, d := range stem.derivations[g] {
		if seen[d.Word] || d.Word.IsStem() {
			continue
		}
		seen[d.Word] = true
		out = append(out, d.Word.text)
	}
	return out
}

// WriteWordList writes every real word in registry order, preceded by
// their count, in the format LoadWordList reads.
func (d *Dictionary) WriteWordList(out io.Writer) error {
	bw := bufio.NewWriter(out)
	words := d.RealWords()
	bw.WriteString(strconv.Itoa(len(words)))
	bw.WriteByte('\n')
	for _, w := range words {
		bw.WriteString(w)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
