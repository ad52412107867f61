// Command server exposes the xmunch dictionary muncher as a JSON REST API.
//
// Endpoints:
//
//	POST /api/munch    body: {"words":[...], "affixes":"...", "format":"compressed|uncompressed"}
//	POST /api/expand   body: {"premunched":"...", "affixes":"..."}
//	POST /api/grammar  body: {"affixes":"..."}
//
// Parsed grammars are cached by content, so clients may resend the same
// affix file with every request.
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/cors"

	"github.com/cours-de-latin/xmunch"
)

// maxBodyBytes bounds request bodies; word lists are sent inline.
const maxBodyBytes = 64 << 20

// ---- JSON types ---------------------------------------------------------

type munchRequest struct {
	Words   []string `json:"words"`
	Affixes string   `json:"affixes"`
	Format  string   `json:"format"`
}

type munchResponse struct {
	Output      string       `json:"output"`
	Stats       xmunch.Stats `json:"stats"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
}

type expandRequest struct {
	Premunched string `json:"premunched"`
	Affixes    string `json:"affixes"`
}

type expandResponse struct {
	Words       []string `json:"words"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

type grammarRequest struct {
	Affixes string `json:"affixes"`
}

type ruleJSON struct {
	Prefix         string   `json:"prefix"`
	Suffix         string   `json:"suffix"`
	StemBeginnings []string `json:"stem_beginnings"`
	StemEndings    []string `json:"stem_endings"`
	Score          int      `json:"score"`
	Bucket         string   `json:"bucket"`
}

type groupJSON struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Mode      string         `json:"mode"`
	AutoScore bool           `json:"auto_score"`
	MinScore  map[string]int `json:"min_score"`
	Rules     []ruleJSON     `json:"rules"`
}

type grammarResponse struct {
	Markers     xmunch.Markers `json:"markers"`
	Groups      []groupJSON    `json:"groups"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, diags []string) {
	writeJSON(w, status, errorResponse{Error: msg, Diagnostics: diags})
}

// diagnostics collects the log lines of one request.
type diagnostics struct {
	buf bytes.Buffer
}

func (d *diagnostics) logger() *log.Logger { return log.New(&d.buf, "", 0) }

func (d *diagnostics) lines() []string {
	s := strings.TrimRight(d.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func toGroupJSON(g *xmunch.AffixGroup) groupJSON {
	gj := groupJSON{
		ID:        g.ID,
		Name:      g.Name,
		Mode:      g.Mode().String(),
		AutoScore: g.AutoScore(),
		MinScore:  make(map[string]int),
		Rules:     make([]ruleJSON, 0, len(g.Affixes())),
	}
	for _, b := range g.Buckets() {
		gj.MinScore[string(b)], _ = g.MinScore(b)
	}
	for _, a := range g.Affixes() {
		gj.Rules = append(gj.Rules, ruleJSON{
			Prefix:         a.Prefix,
			Suffix:         a.Suffix,
			StemBeginnings: a.StemBeginnings,
			StemEndings:    a.StemEndings,
			Score:          a.Score,
			Bucket:         string(a.Bucket),
		})
	}
	return gj
}

// ---- grammar cache ------------------------------------------------------

// parsedGrammar is a cache entry. Grammars are never modified by munching,
// so one entry serves concurrent requests.
type parsedGrammar struct {
	grammar     *xmunch.Grammar
	diagnostics []string
}

type grammarCache struct {
	entries *lru.Cache[string, parsedGrammar]
}

func newGrammarCache(size int) (*grammarCache, error) {
	c, err := lru.New[string, parsedGrammar](size)
	if err != nil {
		return nil, err
	}
	return &grammarCache{entries: c}, nil
}

// get returns the parsed form of src, parsing it on a cache miss. Parse
// errors are not cached.
func (c *grammarCache) get(src string) (parsedGrammar, error) {
	sum := sha256.Sum256([]byte(src))
	key := hex.EncodeToString(sum[:])
	if pg, ok := c.entries.Get(key); ok {
		return pg, nil
	}
	var diags diagnostics
	p := xmunch.Parser{Logger: diags.logger()}
	g, err := p.Parse(strings.NewReader(src))
	if err != nil {
		return parsedGrammar{diagnostics: diags.lines()}, err
	}
	pg := parsedGrammar{grammar: g, diagnostics: diags.lines()}
	c.entries.Add(key, pg)
	return pg, nil
}

// decode reads a JSON POST body into v, answering the request itself on
// failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required", nil)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "body must be JSON: "+err.Error(), nil)
		return false
	}
	return true
}

// grammar resolves the affixes field of a request, answering the request
// itself on failure.
func (c *grammarCache) grammar(w http.ResponseWriter, src string) (parsedGrammar, bool) {
	if src == "" {
		writeError(w, http.StatusBadRequest, "missing 'affixes' field", nil)
		return parsedGrammar{}, false
	}
	pg, err := c.get(src)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), pg.diagnostics)
		return pg, false
	}
	return pg, true
}

// ---- handlers -----------------------------------------------------------

func handleMunch(gc *grammarCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body munchRequest
		if !decode(w, r, &body) {
			return
		}
		format := xmunch.Output(body.Format)
		switch format {
		case "":
			format = xmunch.OutputCompressed
		case xmunch.OutputCompressed, xmunch.OutputUncompressed:
		default:
			writeError(w, http.StatusBadRequest, "format must be 'compressed' or 'uncompressed'", nil)
			return
		}
		pg, ok := gc.grammar(w, body.Affixes)
		if !ok {
			return
		}

		var diags diagnostics
		d := xmunch.New(pg.grammar)
		d.Logger = diags.logger()
		d.Add(body.Words...)
		st := d.Munch()

		var out strings.Builder
		var err error
		if format == xmunch.OutputUncompressed {
			err = d.WriteUncompressed(&out)
		} else {
			err = d.WriteCompressed(&out)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, munchResponse{
			Output:      out.String(),
			Stats:       st,
			Diagnostics: slices.Concat(pg.diagnostics, diags.lines()),
		})
	}
}

func handleExpand(gc *grammarCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body expandRequest
		if !decode(w, r, &body) {
			return
		}
		pg, ok := gc.grammar(w, body.Affixes)
		if !ok {
			return
		}

		var diags diagnostics
		d := xmunch.New(pg.grammar)
		d.Logger = diags.logger()
		if err := d.LoadPremunched(strings.NewReader(body.Premunched)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), diags.lines())
			return
		}
		writeJSON(w, http.StatusOK, expandResponse{
			Words:       d.RealWords(),
			Diagnostics: slices.Concat(pg.diagnostics, diags.lines()),
		})
	}
}

func handleGrammar(gc *grammarCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body grammarRequest
		if !decode(w, r, &body) {
			return
		}
		pg, ok := gc.grammar(w, body.Affixes)
		if !ok {
			return
		}
		groups := make([]groupJSON, 0, len(pg.grammar.Groups))
		for _, g := range pg.grammar.Groups {
			groups = append(groups, toGroupJSON(g))
		}
		writeJSON(w, http.StatusOK, grammarResponse{
			Markers:     pg.grammar.Markers,
			Groups:      groups,
			Diagnostics: pg.diagnostics,
		})
	}
}

// newHandler builds the API mux behind a CORS policy for origins.
func newHandler(gc *grammarCache, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/munch", handleMunch(gc))
	mux.HandleFunc("/api/expand", handleExpand(gc))
	mux.HandleFunc("/api/grammar", handleGrammar(gc))

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cacheSize := flag.Int("cache", 64, "number of parsed affix grammars to keep")
	origins := flag.String("origins", "*", "comma-separated list of allowed CORS origins")
	flag.Parse()

	gc, err := newGrammarCache(*cacheSize)
	if err != nil {
		log.Fatalf("failed to create grammar cache: %v", err)
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newHandler(gc, strings.Split(*origins, ","))); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
