package xmunch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

var (
	// ErrMissingHeader is returned when a grammar does not start with the
	// W<stem-separator>A<name-separator>A<virtual-marker> header.
	ErrMissingHeader = errors.New("affix grammar: missing W header")

	// ErrNoGroups is returned when a grammar declares no affix group.
	ErrNoGroups = errors.New("affix grammar: no affix group")
)

// Grammar is a parsed affix file: the output markers and the groups in
// declaration order. A Grammar is not modified by munching and may be
// shared by several dictionaries.
type Grammar struct {
	Markers Markers
	Groups  []*AffixGroup

	byName map[string]*AffixGroup
}

// Group returns the group called name, or nil.
func (g *Grammar) Group(name string) *AffixGroup {
	if g == nil {
		return nil
	}
	return g.byName[name]
}

// Parser reads affix grammars:
//
//	W/AA!                         # stem separator, name separator, virtual marker
//	plural (1) {                  # group name, optional flags
//	    .      s                  # stem endings, affix
//	    y      ies  (2a)          # optional score and bucket
//	    .:.    un:  (1)           # beginnings:endings, prefix:suffix
//	}
//
// Flags are minimum scores (a number, optionally followed by a bucket
// letter) and one of v, o, c, n for the VIRTUAL, OPTIONAL, CREATE and
// NORMAL modes. A suffix starting with '.' expands to one rule per stem
// ending, each ending being prepended to the rest of the suffix.
type Parser struct {
	// Logger receives diagnostics about malformed rules. nil means no
	// logging.
	Logger *log.Logger

	// Form is applied to every affix and replacement string.
	Form TextForm
}

// ParseGrammar parses r with a default Parser.
func ParseGrammar(r io.Reader) (*Grammar, error) {
	var p Parser
	return p.Parse(r)
}

// Parse reads a complete grammar from r. Malformed rules are logged and
// skipped; only a missing header, an empty grammar or a read error fail.
func (p *Parser) Parse(r io.Reader) (*Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read affix grammar: %w", err)
	}
	gp := grammarParser{cursor: cursor{src: string(data)}, p: p}
	return gp.parse()
}

type grammarParser struct {
	cursor
	p *Parser
}

func (gp *grammarParser) logf(format string, args ...any) {
	logf(gp.p.Logger, "affix grammar: "+format, args...)
}

func (gp *grammarParser) parse() (*Grammar, error) {
	g := &Grammar{byName: make(map[string]*AffixGroup)}

	gp.skipWhite()
	if gp.next() != 'W' {
		return nil, ErrMissingHeader
	}
	stemSep := gp.skipPast('A')
	nameSep := gp.skipPast('A')
	mark := gp.token(isSpace)
	if gp.eof() && mark == "" {
		return nil, fmt.Errorf("%w: incomplete header", ErrMissingHeader)
	}
	g.Markers = Markers{StemSeparator: stemSep, NameSeparator: nameSep, VirtualMarker: mark}

	gp.skipWhite()
	for !gp.eof() {
		grp := gp.readGroup(len(g.Groups))
		gp.skipWhite()
		if grp == nil {
			continue
		}
		if _, dup := g.byName[grp.Name]; dup {
			gp.logf("duplicate group %q ignored", grp.Name)
			continue
		}
		g.byName[grp.Name] = grp
		g.Groups = append(g.Groups, grp)
	}
	if len(g.Groups) == 0 {
		return nil, ErrNoGroups
	}
	return g, nil
}

func (gp *grammarParser) readGroup(id int) *AffixGroup {
	name := gp.token(func(b byte) bool { return isSpace(b) || b == '(' || b == '{' })
	if name == "" {
		gp.logf("expected group name, got %q", gp.next())
		return nil
	}
	grp := NewAffixGroup(id, name)

	gp.skipWhite()
	if gp.peek() == '(' {
		gp.next()
		gp.readFlags(grp)
	}
	gp.skipWhite()
	if gp.peek() == '{' {
		gp.next()
	} else {
		gp.logf("expected '{' after header of %q", name)
	}

	for {
		gp.skipWhite()
		if gp.eof() {
			gp.logf("group %q: missing '}'", name)
			break
		}
		if gp.peek() == '}' {
			gp.next()
			break
		}
		gp.readRule(grp)
	}
	return grp
}

func (gp *grammarParser) readFlags(grp *AffixGroup) {
	for {
		gp.skipWhite()
		c := gp.peek()
		switch {
		case gp.eof():
			gp.logf("group %q: missing ')'", grp.Name)
			return
		case c == ')':
			gp.next()
			return
		case c == '{':
			gp.logf("group %q: missing ')'", grp.Name)
			return
		case isDigit(c):
			score, bucket := gp.readScore()
			grp.SetMinScore(bucket, score)
		default:
			gp.next()
			if mode, ok := stemLetters[c]; ok {
				grp.SetMode(mode)
			} else {
				gp.logf("group %q: unknown flag %q", grp.Name, c)
			}
		}
	}
}

// readScore reads a number and an optional bucket letter or '*' written
// right after it.
func (gp *grammarParser) readScore() (int, rune) {
	digits := gp.token(func(b byte) bool { return !isDigit(b) })
	n, err := strconv.Atoi(digits)
	if err != nil {
		gp.logf("invalid score %q", digits)
	}
	bucket := rune(DefaultBucket)
	if c := gp.peek(); isLetter(c) || c == '*' {
		gp.next()
		bucket = rune(c)
	}
	return n, bucket
}

// field reads a run of non-blank bytes, stopping before '(' , '}' and '#'.
func (gp *grammarParser) field() string {
	return gp.token(func(b byte) bool { return isSpace(b) || b == '(' || b == '}' || b == '#' })
}

func (gp *grammarParser) readRule(grp *AffixGroup) {
	repl := gp.field()
	for strings.HasSuffix(repl, ",") && !gp.eof() {
		gp.skipWhite()
		more := gp.field()
		if more == "" {
			gp.logf("group %q: dangling ',' in %q", grp.Name, repl)
			break
		}
		repl += more
	}
	if repl == "" {
		gp.logf("group %q: unexpected %q", grp.Name, gp.next())
		return
	}

	gp.skipWhite()
	affix := gp.field()
	if affix == "" {
		gp.logf("group %q: missing affix after %q", grp.Name, repl)
		return
	}

	score, bucket := 1, rune(DefaultBucket)
	gp.skipWhite()
	if gp.peek() == '(' {
		gp.next()
		gp.skipWhite()
		if isDigit(gp.peek()) {
			score, bucket = gp.readScore()
		}
		gp.skipWhite()
		if gp.peek() == ')' {
			gp.next()
		} else {
			gp.logf("group %q: expected ')' after score of %q", grp.Name, affix)
		}
	}

	if !grp.AutoScore() {
		if _, ok := grp.MinScore(bucket); !ok {
			gp.logf("group %q: score bucket %q of %q has no minimum score", grp.Name, bucket, affix)
		}
	}

	form := gp.p.Form
	begins, ends := splitReplacements(repl)
	begins, ends = form.applyAll(begins), form.applyAll(ends)
	prefix, suffix := "", affix
	if i := strings.IndexByte(affix, ':'); i >= 0 {
		prefix, suffix = affix[:i], affix[i+1:]
	}
	prefix, suffix = form.Apply(prefix), form.Apply(suffix)

	if rest, ok := strings.CutPrefix(suffix, "."); ok {
		for i, e := range orEmpty(ends) {
			grp.AddAffix(AffixSpec{
				Prefix:         prefix,
				Suffix:         e + rest,
				StemBeginnings: begins,
				StemEndings:    []string{e},
				Score:          score,
				Bucket:         bucket,
				NoAutoScore:    i > 0,
			})
		}
		return
	}
	grp.AddAffix(AffixSpec{
		Prefix:         prefix,
		Suffix:         suffix,
		StemBeginnings: begins,
		StemEndings:    ends,
		Score:          score,
		Bucket:         bucket,
	})
}

// splitReplacements splits `endings` or `beginnings:endings`. A side that
// is empty or "." means no replacement.
func splitReplacements(s string) (begins, ends []string) {
	b, e, ok := strings.Cut(s, ":")
	if !ok {
		b, e = "", s
	}
	return splitList(b), splitList(e)
}

func splitList(s string) []string {
	if s == "" || s == "." {
		return nil
	}
	out := strings.Split(s, ",")
	for i, x := range out {
		if x == "." {
			out[i] = ""
		}
	}
	return out
}

// Dump writes the parsed rule tree of g, one group header and one line
// per rule.
func (g *Grammar) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "markers %q %q %q\n", g.Markers.StemSeparator, g.Markers.NameSeparator, g.Markers.VirtualMarker)
	for _, grp := range g.Groups {
		fmt.Fprintf(bw, "%d: %s (", grp.ID, grp.Name)
		for i, b := range grp.Buckets() {
			if i > 0 {
				bw.WriteByte(',')
			}
			s, _ := grp.MinScore(b)
			fmt.Fprintf(bw, "%c%d", b, s)
		}
		fmt.Fprintf(bw, ") %s", grp.Mode())
		if grp.AutoScore() {
			bw.WriteString(" auto")
		}
		bw.WriteString(" {\n")
		for _, a := range grp.Affixes() {
			fmt.Fprintf(bw, "\t%s:%s (%c%d) [%s:%s] %s\n",
				a.Prefix, a.Suffix, a.Bucket, a.Score,
				strings.Join(a.StemBeginnings, ","), strings.Join(a.StemEndings, ","), a.Mode)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
