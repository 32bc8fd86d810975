package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Item is a catalog identifier: the file name of a photo under the photos
// directory (for example "ece_nur.jpeg").
type Item string

// Entry pairs an item with its display label.
type Entry struct {
	Item  Item   `json:"item"`
	Label string `json:"label"`
}

// Label derives the display label of an identifier: everything from the first
// dot is dropped, underscores become spaces and each word is title-cased.
//
//	Label("ece_nur.jpeg") == "Ece Nur"
func Label(id Item) string {
	base, _, _ := strings.Cut(string(id), ".")
	words := strings.Split(strings.ReplaceAll(base, "_", " "), " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// Entries returns items paired with their labels, in the given order.
func Entries(items []Item) []Entry {
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		out = append(out, Entry{Item: it, Label: Label(it)})
	}
	return out
}
