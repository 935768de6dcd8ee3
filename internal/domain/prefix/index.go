// Package prefix provides a case-insensitive prefix index over words that
// keeps every original spelling it was given.
package prefix

import (
	"slices"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// spellings holds the original-case variants stored under one lower-cased key,
// kept sorted.
type spellings []string

// Index is a compressed trie keyed by lower-cased words.
//
// Insert and lookup run in O(len(word)); enumeration runs in
// O(len(prefix) + matches). Index is not safe for concurrent use.
type Index struct {
	trie *patricia.Trie
	size int
}

// New creates an empty index.
func New() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// Insert stores word under its lower-cased key. Blank words are ignored.
func (x *Index) Insert(word string) {
	if strings.TrimSpace(word) == "" {
		return
	}
	key := patricia.Prefix(strings.ToLower(word))

	item := x.trie.Get(key)
	if item == nil {
		x.trie.Insert(key, spellings{word})
		x.size++
		return
	}

	vs := item.(spellings)
	i, found := slices.BinarySearch(vs, word)
	if found {
		return
	}
	x.trie.Set(key, slices.Insert(vs, i, word))
	x.size++
}

// Contains reports whether word is stored, ignoring case.
func (x *Index) Contains(word string) bool {
	if word == "" {
		return false
	}
	return x.trie.Get(patricia.Prefix(strings.ToLower(word))) != nil
}

// HasPrefix reports whether any stored word starts with prefix.
// The empty prefix never matches.
func (x *Index) HasPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	return x.trie.MatchSubtree(patricia.Prefix(strings.ToLower(prefix)))
}

// WordsWithPrefix returns the original spellings of every word beneath prefix.
// The empty prefix returns nothing. Variants of one key come back sorted; the
// order between keys is unspecified.
func (x *Index) WordsWithPrefix(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var out []string
	_ = x.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.(spellings)...)
		return nil
	})
	return out
}

// Words returns every stored spelling, variants of one key sorted.
func (x *Index) Words() []string {
	out := make([]string, 0, x.size)
	_ = x.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.(spellings)...)
		return nil
	})
	return out
}

// Remove deletes the key for word together with all of its spellings.
// It reports whether anything was removed.
func (x *Index) Remove(word string) bool {
	if word == "" {
		return false
	}
	key := patricia.Prefix(strings.ToLower(word))
	item := x.trie.Get(key)
	if item == nil {
		return false
	}
	x.size -= len(item.(spellings))
	return x.trie.Delete(key)
}

// Size returns the number of stored spellings.
func (x *Index) Size() int { return x.size }

// Keys returns the number of distinct lower-cased keys.
func (x *Index) Keys() int {
	n := 0
	_ = x.trie.Visit(func(_ patricia.Prefix, _ patricia.Item) error {
		n++
		return nil
	})
	return n
}

// IsEmpty reports whether the index holds no words.
func (x *Index) IsEmpty() bool { return x.size == 0 }

// Clear drops every stored word.
func (x *Index) Clear() {
	x.trie = patricia.NewTrie()
	x.size = 0
}
