package xmunch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// defaultSizeHint is used when the word list does not start with a count.
const defaultSizeHint = 500

// LoadWordList reads one word per line into the real namespace. The first
// line may hold the number of words, which only sizes the registry; a
// list without it is accepted with a warning.
func (d *Dictionary) LoadWordList(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				d.grow(n)
				continue
			}
			logf(d.Logger, "word list: first line should contain the number of words")
			d.grow(defaultSizeHint)
		}
		if line == "" {
			continue
		}
		d.words.AddReal(d.Form.Apply(line))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	return nil
}

// Add registers words in the real namespace, in order. Empty strings are
// skipped.
func (d *Dictionary) Add(words ...string) {
	d.grow(len(words))
	for _, w := range words {
		if w = d.Form.Apply(w); w != "" {
			d.words.AddReal(w)
		}
	}
}

// RealWords returns the text of every real word in registry order.
func (d *Dictionary) RealWords() []string {
	out := make([]string, 0, d.words.RealLen())
	for _, w := range d.words.Words() {
		if !w.virtual {
			out = append(out, w.text)
		}
	}
	return out
}

// grow replaces an empty registry by one sized for about n words.
func (d *Dictionary) grow(n int) {
	if d.words.Len() == 0 && n > 0 {
		d.words = NewRegistry(n)
	}
}
