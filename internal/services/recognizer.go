package services

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Entity is one labeled span produced by a recognition model.
type Entity struct {
	Text  string
	Label string
}

// Recognizer is the narrow view the engine takes of a named-entity
// model: text in, labeled spans out. It decouples skill extraction from
// any particular model's object shape. Implementations must be safe for
// concurrent use.
type Recognizer interface {
	Entities(text string) []Entity
}

//go:embed tech_lexicon.txt
var defaultLexicon string

var (
	recognizerMu    sync.Mutex
	recognizerCache = map[string]Recognizer{}
)

// LoadRecognizer returns the process-wide recognizer for the given
// lexicon path, loading it on first use and reusing it afterwards. An
// empty path selects the embedded default vocabulary. When the lexicon
// cannot be loaded the generic heuristic recognizer is cached instead,
// so extraction always has a model to run against.
func LoadRecognizer(path string) Recognizer {
	recognizerMu.Lock()
	defer recognizerMu.Unlock()

	if r, ok := recognizerCache[path]; ok {
		return r
	}

	r, err := newLexiconRecognizer(path)
	if err != nil {
		log.Printf("⚠️  Failed to load skill lexicon %q: %v. Falling back to generic recognizer.\n", path, err)
		r = genericRecognizer{}
	}

	recognizerCache[path] = r
	return r
}

// lexiconRecognizer matches a fixed vocabulary of known terms against
// the input on word boundaries. It stands in for the trained NER model:
// deterministic for a given lexicon.
type lexiconRecognizer struct {
	terms []string
}

func newLexiconRecognizer(path string) (Recognizer, error) {
	raw := defaultLexicon
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon: %w", err)
		}
		raw = string(data)
	}

	var terms []string
	seen := map[string]struct{}{}
	for _, line := range strings.Split(raw, "\n") {
		term := strings.ToLower(strings.TrimSpace(line))
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}

	return &lexiconRecognizer{terms: terms}, nil
}

func (l *lexiconRecognizer) Entities(text string) []Entity {
	lower := strings.ToLower(text)

	var entities []Entity
	for _, term := range l.terms {
		if containsTerm(lower, term) {
			entities = append(entities, Entity{Text: term, Label: "TECH"})
		}
	}
	return entities
}

// containsTerm reports whether term occurs in text delimited by
// non-alphanumeric runes, so "go" does not match inside "django".
func containsTerm(text, term string) bool {
	for offset := 0; ; {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// genericRecognizer is the fallback model: a crude proper-noun detector
// that labels capitalized and code-styled tokens as organizations. It
// exists so extraction still produces a usable term set when no lexicon
// is available.
type genericRecognizer struct{}

func (genericRecognizer) Entities(text string) []Entity {
	var entities []Entity
	for _, token := range strings.FieldsFunc(text, isTokenBoundary) {
		token = strings.Trim(token, ".")
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if looksLikeName(token) {
			entities = append(entities, Entity{Text: token, Label: "ORG"})
		}
	}
	return entities
}

func isTokenBoundary(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	switch r {
	case '+', '#', '.', '-':
		return false
	}
	return true
}

func looksLikeName(token string) bool {
	if strings.ContainsAny(token, "+#") {
		return true
	}

	first, _ := utf8.DecodeRuneInString(token)
	if !unicode.IsUpper(first) {
		// CamelCase with a lowercase head, e.g. "jQuery".
		return strings.IndexFunc(token[1:], unicode.IsUpper) >= 0
	}

	// All-caps acronyms and capitalized names both qualify.
	return true
}
