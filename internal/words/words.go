// internal/words/words.go
//
// Word catalog for the game engine.
//
// Responsibilities:
//   - Load theme → word/hint entries from the catalog text format.
//   - Pick entries uniformly at random through an injectable Source.
//   - Expose theme metadata (ordered theme list, display titles).
//
// Catalog format:
//   [theme] Display Title     section header; theme ids are lowercase
//   WORD | hint               one entry per line, uppercase letters and spaces
//   # comment                 ignored, as are blank lines
//
// Initialization behavior (Init):
//   1. If a path is given (WORDS_CATALOG_FILE), load the catalog from that file.
//   2. Otherwise fall back to the embedded assets/themes.txt.
//
// The catalog is read-only after loading and safe for concurrent use.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/hangman/assets"
)

// ErrThemeNotFound is returned when a theme is not present in the catalog.
var ErrThemeNotFound = errors.New("theme not found")

// Theme identifies a group of words, e.g. "cities".
type Theme string

// Entry is a single target word and its hint.
type Entry struct {
	Word string `json:"word"` // uppercase letters and spaces
	Hint string `json:"hint"`
}

// Source supplies uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Catalog is an immutable set of themes and their entries.
type Catalog struct {
	order   []Theme
	titles  map[Theme]string
	entries map[Theme][]Entry
}

var (
	initOnce   sync.Once
	defaultCat *Catalog
	initialErr error
)

// Init loads the default catalog exactly once, from path or the embedded copy.
func Init(path string) error {
	initOnce.Do(func() {
		var r io.ReadCloser
		if path != "" {
			f, err := os.Open(path)
			if err != nil {
				initialErr = err
				return
			}
			r = f
		} else {
			f, err := assets.Themes()
			if err != nil {
				initialErr = err
				return
			}
			r = f
		}
		defer r.Close()
		defaultCat, initialErr = Load(r)
	})
	return initialErr
}

// Default returns the catalog loaded by Init, or nil if Init failed or was not called.
func Default() *Catalog {
	return defaultCat
}

// Load parses a catalog. Every theme must have at least one entry.
func Load(r io.Reader) (*Catalog, error) {
	c := &Catalog{
		titles:  make(map[Theme]string),
		entries: make(map[Theme][]Entry),
	}
	var current Theme
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		if strings.HasPrefix(s, "[") {
			end := strings.Index(s, "]")
			if end < 2 {
				return nil, fmt.Errorf("words: line %d: malformed theme header %q", line, s)
			}
			current = Theme(strings.ToLower(strings.TrimSpace(s[1:end])))
			if _, dup := c.titles[current]; dup {
				return nil, fmt.Errorf("words: line %d: duplicate theme %q", line, current)
			}
			title := strings.TrimSpace(s[end+1:])
			if title == "" {
				title = string(current)
			}
			c.order = append(c.order, current)
			c.titles[current] = title
			continue
		}

		if current == "" {
			return nil, fmt.Errorf("words: line %d: entry outside of a theme", line)
		}
		word, hint, _ := strings.Cut(s, "|")
		word = strings.ToUpper(strings.TrimSpace(word))
		if !validWord(word) {
			return nil, fmt.Errorf("words: line %d: invalid word %q", line, word)
		}
		c.entries[current] = append(c.entries[current], Entry{Word: word, Hint: strings.TrimSpace(hint)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(c.order) == 0 {
		return nil, errors.New("words: catalog has no themes")
	}
	for _, t := range c.order {
		if len(c.entries[t]) == 0 {
			return nil, fmt.Errorf("words: theme %q has no entries", t)
		}
	}
	return c, nil
}

// validWord reports whether w is uppercase A–Z and spaces with at least one letter.
func validWord(w string) bool {
	letters := 0
	for _, r := range w {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r == ' ':
		default:
			return false
		}
	}
	return letters > 0
}

// RandomWord picks one entry of theme uniformly at random.
// Calls are independent; the same entry may come back twice in a row.
func (c *Catalog) RandomWord(theme Theme, src Source) (Entry, error) {
	list, ok := c.entries[theme]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}
	if src == nil {
		src = CryptoSource{}
	}
	return list[src.IntN(len(list))], nil
}

// Themes returns theme ids in catalog order.
func (c *Catalog) Themes() []Theme {
	return append([]Theme(nil), c.order...)
}

// Has reports whether theme exists.
func (c *Catalog) Has(theme Theme) bool {
	_, ok := c.entries[theme]
	return ok
}

// Title returns the display title of theme, or "" if unknown.
func (c *Catalog) Title(theme Theme) string {
	return c.titles[theme]
}

// Entries returns a copy of the entries of theme.
func (c *Catalog) Entries(theme Theme) []Entry {
	return append([]Entry(nil), c.entries[theme]...)
}

// Stats returns counts of loaded data: (themes, entries).
func (c *Catalog) Stats() (themes int, entries int) {
	for _, list := range c.entries {
		entries += len(list)
	}
	return len(c.order), entries
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("words: IntN called with n <= 0")
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(nBig.Int64())
}
