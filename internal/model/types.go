// Package model defines shared data structures.
package model

import (
	"strconv"
	"strings"
)

// AllDecksID is the reserved deck id meaning "no deck restriction".
const AllDecksID int64 = 0

// DeckNameSeparator separates nested deck names ("Parent::Child").
const DeckNameSeparator = "::"

// DeckInfo identifies a deck by id and display name.
type DeckInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IsSubdeck reports whether the deck name denotes a nested sub-deck.
func (d DeckInfo) IsSubdeck() bool {
	return strings.Contains(d.Name, DeckNameSeparator)
}

// SubdeckMode controls which sub-decks a selection includes.
type SubdeckMode int

const (
	// SubdecksNone restricts the selection to the deck itself.
	SubdecksNone SubdeckMode = iota
	// SubdecksAll includes the full subtree below the deck.
	SubdecksAll
)

// DeckSelection identifies a deck and how far the selection extends.
type DeckSelection struct {
	DeckID   int64
	Subdecks SubdeckMode
}

// FieldSelectorKind enumerates the field selection variants.
type FieldSelectorKind int

const (
	// FieldSelectorInvalid extracts nothing. Unknown mode strings parse to it.
	FieldSelectorInvalid FieldSelectorKind = iota
	// FieldSelectorAll extracts from every field.
	FieldSelectorAll
	// FieldSelectorSort extracts from the sort field (index 0) only.
	FieldSelectorSort
	// FieldSelectorIndex extracts from one specific 1-based field.
	FieldSelectorIndex
)

// FieldSelector is the parsed form of a field-mode string.
type FieldSelector struct {
	Kind  FieldSelectorKind
	Index int // 1-based, set only for FieldSelectorIndex
}

// ParseFieldSelector parses a field-mode string ("all", "sortField", "1",
// "2", ...). Unknown strings yield an invalid selector, not an error.
func ParseFieldSelector(mode string) FieldSelector {
	switch mode {
	case "all":
		return FieldSelector{Kind: FieldSelectorAll}
	case "sortField":
		return FieldSelector{Kind: FieldSelectorSort}
	}
	if n, err := strconv.Atoi(mode); err == nil && n > 0 {
		return FieldSelector{Kind: FieldSelectorIndex, Index: n}
	}
	return FieldSelector{Kind: FieldSelectorInvalid}
}

// String returns the mode string form of the selector.
func (f FieldSelector) String() string {
	switch f.Kind {
	case FieldSelectorAll:
		return "all"
	case FieldSelectorSort:
		return "sortField"
	case FieldSelectorIndex:
		return strconv.Itoa(f.Index)
	}
	return "invalid"
}

// ReportConfig carries the settings a report computation consumes.
type ReportConfig struct {
	FieldMode       FieldSelector
	IncludeSubdecks bool
	ShowCategories  bool
	// CategoriesToShow is consumed by presentation layers only; the core
	// computes every scheme when ShowCategories is set.
	CategoriesToShow []string
}
