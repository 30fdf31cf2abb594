package services

import (
	"fmt"
	"strings"
)

// vocabulary identifies which lookup set a resolver serves.
type vocabulary string

const (
	vocabCategory  vocabulary = "category"
	vocabTag       vocabulary = "tag"
	vocabItemTag   vocabulary = "item_tag"
	vocabAttribute vocabulary = "attribute"
)

// lookupEntry is one vocabulary code with its per-language display names.
type lookupEntry struct {
	code  string
	names map[string]string
}

// lookupResolver resolves a free-text name to a vocabulary code. Matching
// is insensitive to case and separators; two inputs that normalize
// identically always resolve to the same code. When create is nil the
// resolver is read-only and unmatched names return no code (categories).
// Otherwise it mints a deterministic code and persists it (tags, item
// tags, attributes).
type lookupResolver struct {
	vocab   vocabulary
	entries []*lookupEntry
	byCode  map[string]*lookupEntry
	create  func(code, name, language string) error
}

func newLookupResolver(vocab vocabulary, create func(code, name, language string) error) *lookupResolver {
	return &lookupResolver{
		vocab:  vocab,
		byCode: make(map[string]*lookupEntry),
		create: create,
	}
}

func (r *lookupResolver) add(code string, names map[string]string) {
	if names == nil {
		names = make(map[string]string)
	}
	entry := &lookupEntry{code: code, names: names}
	r.entries = append(r.entries, entry)
	r.byCode[code] = entry
}

// normalizeKey lower-cases and strips spaces, dashes and underscores.
// Category names additionally drop dots, so "Cat. 1" and "cat 1" collide.
func (r *lookupResolver) normalizeKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	if r.vocab == vocabCategory {
		key = strings.ReplaceAll(key, ".", "")
	}
	return key
}

// mintCode derives the raw code for a first-seen display name.
func mintCode(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Resolve returns the code for name, minting and persisting a new one when
// allowed. The boolean reports whether a code was resolved; a read-only
// resolver returns ("", false, nil) for unmatched names.
func (r *lookupResolver) Resolve(name, language string) (string, bool, error) {
	key := r.normalizeKey(name)
	if key == "" {
		return "", false, nil
	}

	for _, entry := range r.entries {
		if r.normalizeKey(entry.code) == key {
			return entry.code, true, nil
		}
	}

	for _, entry := range r.entries {
		for _, display := range entry.names {
			if r.normalizeKey(display) == key {
				return entry.code, true, nil
			}
		}
	}

	if r.create == nil {
		return "", false, nil
	}

	// Normalization is lossy, so a fresh mint can still collide with an
	// existing raw code; disambiguate with a numeric suffix.
	code := mintCode(name)
	if _, taken := r.byCode[code]; taken {
		for i := 1; ; i++ {
			candidate := fmt.Sprintf("%s_%d", code, i)
			if _, taken := r.byCode[candidate]; !taken {
				code = candidate
				break
			}
		}
	}

	if err := r.create(code, name, language); err != nil {
		return "", false, err
	}
	r.add(code, map[string]string{language: name})
	return code, true, nil
}
