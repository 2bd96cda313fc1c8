// Package tags normalizes the heterogeneous tag field found in movie data
// into canonical lowercase tags and builds the selectable genre vocabulary.
package tags

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the shape a raw tag field arrived in.
type Kind uint8

const (
	KindNone Kind = iota
	KindDelimited
	KindList
)

// minTokenLen drops stray one and two letter tokens from delimited strings.
// List-shaped fields are never length filtered.
const minTokenLen = 2

// Raw is a movie's tag field as stored in the source artifact: a delimited
// string, a list of strings, or nothing usable.
type Raw struct {
	kind Kind
	text string
	list []string
}

// None returns a tag field with no usable value.
func None() Raw {
	return Raw{}
}

// Delimited wraps a "action|thriller space" style tag string.
func Delimited(s string) Raw {
	return Raw{kind: KindDelimited, text: s}
}

// List wraps an already split list of tags.
func List(items ...string) Raw {
	return Raw{kind: KindList, list: append([]string{}, items...)}
}

// Kind reports which shape the field has.
func (r Raw) Kind() Kind {
	return r.kind
}

// Text returns the delimited string, if the field is delimited.
func (r Raw) Text() string {
	return r.text
}

// Items returns a copy of the list, if the field is a list.
func (r Raw) Items() []string {
	return append([]string(nil), r.list...)
}

func isDelimiter(r rune) bool {
	return r == '|' || r == ',' || r == ' '
}

// Extract converts a raw tag field into lowercase tags in order of appearance.
func Extract(raw Raw) []string {
	switch raw.kind {
	case KindList:
		out := make([]string, 0, len(raw.list))
		for _, item := range raw.list {
			out = append(out, strings.ToLower(strings.TrimSpace(item)))
		}
		return out

	case KindDelimited:
		parts := strings.FieldsFunc(raw.text, isDelimiter)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if utf8.RuneCountInString(part) > minTokenLen {
				out = append(out, strings.ToLower(part))
			}
		}
		return out

	default:
		return []string{}
	}
}

// Contains reports whether tag is one of the extracted tags of raw.
// tag must already be lowercase.
func Contains(raw Raw, tag string) bool {
	for _, t := range Extract(raw) {
		if t == tag {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(tag string) string {
	r, size := utf8.DecodeRuneInString(tag)
	if size == 0 || r == utf8.RuneError {
		return tag
	}
	return string(unicode.ToUpper(r)) + tag[size:]
}

// Vocabulary is the sorted set of capitalized tag labels.
type Vocabulary []string

// BuildVocabulary extracts every field, capitalizes each tag, and returns the
// distinct labels sorted lexicographically.
func BuildVocabulary(raws []Raw) Vocabulary {
	seen := make(map[string]struct{})
	for _, raw := range raws {
		for _, tag := range Extract(raw) {
			seen[Capitalize(tag)] = struct{}{}
		}
	}

	vocab := make(Vocabulary, 0, len(seen))
	for label := range seen {
		vocab = append(vocab, label)
	}
	sort.Strings(vocab)
	return vocab
}

// Contains reports whether label is part of the vocabulary.
func (v Vocabulary) Contains(label string) bool {
	i := sort.SearchStrings(v, label)
	return i < len(v) && v[i] == label
}
