// Package vocab enforces age-appropriate language constraints.
package vocab

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownTier is returned when a tier has no registered band.
var ErrUnknownTier = errors.New("vocab: unknown tier")

// Violation kinds reported by Check.
const (
	KindForbiddenToken     = "forbidden_token"
	KindSentenceComplexity = "sentence_complexity"
)

// Band is the language constraint set for one vocabulary tier.
type Band struct {
	Tier             string   `yaml:"tier"`
	Stage            string   `yaml:"stage"`
	CognitiveFocus   string   `yaml:"cognitive_focus"`
	MaxSentenceWords int      `yaml:"max_sentence_words"`
	MaxTokens        int      `yaml:"max_tokens"`
	ForbiddenTokens  []string `yaml:"forbidden_tokens"`
	LanguageTraits   []string `yaml:"language_traits"`
	CoreVocabulary   []string `yaml:"core_vocabulary"`
}

// Violation is a single vocabulary rule breach in a piece of text.
type Violation struct {
	Kind     string
	Token    string
	Sentence string
	Words    int
	Message  string
}

// Registry holds the bands for all tiers.
type Registry struct {
	bands map[string]Band
}

// NewRegistry builds a registry from the given bands.
func NewRegistry(bands []Band) *Registry {
	m := make(map[string]Band, len(bands))
	for _, b := range bands {
		m[b.Tier] = b
	}
	return &Registry{bands: m}
}

// BandFor returns the band for tier, or ErrUnknownTier.
func (r *Registry) BandFor(tier string) (Band, error) {
	b, ok := r.bands[tier]
	if !ok {
		return Band{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return b, nil
}

// Tiers returns all registered tiers in sorted order.
func (r *Registry) Tiers() []string {
	out := make([]string, 0, len(r.bands))
	for t := range r.bands {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Check returns every violation of band in text, ordered by sentence
// position and then by the band's forbidden-token order. Matching is
// case-insensitive and whole-word: a forbidden token never matches as a
// substring of a longer word.
func Check(text string, band Band) []Violation {
	var out []Violation
	for _, raw := range sentenceSplit.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		words := len(strings.Fields(sentence))
		if band.MaxSentenceWords > 0 && words > band.MaxSentenceWords {
			out = append(out, Violation{
				Kind:     KindSentenceComplexity,
				Sentence: sentence,
				Words:    words,
				Message: fmt.Sprintf("sentence has %d words, tier %s allows %d",
					words, band.Tier, band.MaxSentenceWords),
			})
		}
		for _, tok := range band.ForbiddenTokens {
			if tokenPattern(tok).MatchString(sentence) {
				out = append(out, Violation{
					Kind:     KindForbiddenToken,
					Token:    tok,
					Sentence: sentence,
					Message:  fmt.Sprintf("forbidden token %q for tier %s", tok, band.Tier),
				})
			}
		}
	}
	return out
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func tokenPattern(tok string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[tok]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(tok) + `\b`)
	patternCache[tok] = re
	return re
}
