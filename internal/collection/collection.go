// Package collection provides read-only access to an Anki collection file.
package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/hanzistats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// FieldSeparator separates note fields inside a raw field blob.
const FieldSeparator = "\x1f"

// ReviewFilter selects which cards a field-blob query considers.
type ReviewFilter int

const (
	// AnyCard matches active cards, excluding suspended and buried ones.
	AnyCard ReviewFilter = iota
	// ReviewedOnly additionally requires at least one review log entry.
	ReviewedOnly
)

// Store wraps SQLite access to a collection. It never writes.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens an existing collection database. The file must already exist;
// a collection is owned by the host application, never created here.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Decks lists every deck as (id, name) pairs sorted by name, prefixed with
// the reserved "All Decks" entry (id 0). Nested names use "::".
func (s *Store) Decks(ctx context.Context) ([]model.DeckInfo, error) {
	decks, err := s.decksFromTable(ctx)
	if err != nil {
		// Older collections keep decks as JSON in the col table.
		decks, err = s.decksFromColJSON(ctx)
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(decks, func(i, j int) bool {
		if decks[i].Name == decks[j].Name {
			return decks[i].ID < decks[j].ID
		}
		return decks[i].Name < decks[j].Name
	})
	out := make([]model.DeckInfo, 0, len(decks)+1)
	out = append(out, model.DeckInfo{ID: model.AllDecksID, Name: "All Decks"})
	out = append(out, decks...)
	return out, nil
}

func (s *Store) decksFromTable(ctx context.Context) ([]model.DeckInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM decks`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var decks []model.DeckInfo
	for rows.Next() {
		var deck model.DeckInfo
		if err := rows.Scan(&deck.ID, &deck.Name); err != nil {
			return nil, err
		}
		deck.Name = normalizeDeckName(deck.Name)
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}

func (s *Store) decksFromColJSON(ctx context.Context) ([]model.DeckInfo, error) {
	var raw string
	if err := s.db.QueryRowContext(ctx, `SELECT decks FROM col`).Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to read deck list: %w", err)
	}
	var parsed map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse deck list: %w", err)
	}
	decks := make([]model.DeckInfo, 0, len(parsed))
	for idStr, deck := range parsed {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			s.log.Warn("skipping deck with malformed id", zap.String("id", idStr))
			continue
		}
		decks = append(decks, model.DeckInfo{ID: id, Name: normalizeDeckName(deck.Name)})
	}
	return decks, nil
}

// Newer schema versions separate nested deck names with \x1f.
func normalizeDeckName(name string) string {
	return strings.ReplaceAll(name, FieldSeparator, model.DeckNameSeparator)
}

// DeckAndChildIDs resolves a deck to itself plus its full subtree, matched
// by name prefix. An unknown deck id yields an empty slice, not an error.
func (s *Store) DeckAndChildIDs(ctx context.Context, deckID int64) ([]int64, error) {
	decks, err := s.Decks(ctx)
	if err != nil {
		return nil, err
	}
	var parent string
	for _, deck := range decks {
		if deck.ID == deckID && deck.ID != model.AllDecksID {
			parent = deck.Name
			break
		}
	}
	if parent == "" {
		return nil, nil
	}
	prefix := parent + model.DeckNameSeparator
	var ids []int64
	for _, deck := range decks {
		if deck.ID == model.AllDecksID {
			continue
		}
		if deck.ID == deckID || strings.HasPrefix(deck.Name, prefix) {
			ids = append(ids, deck.ID)
		}
	}
	return ids, nil
}

// DeckName returns the display name for a deck id, or "All Decks" for the
// reserved id. Unknown ids yield an empty string.
func (s *Store) DeckName(ctx context.Context, deckID int64) (string, error) {
	if deckID == model.AllDecksID {
		return "All Decks", nil
	}
	decks, err := s.Decks(ctx)
	if err != nil {
		return "", err
	}
	for _, deck := range decks {
		if deck.ID == deckID {
			return deck.Name, nil
		}
	}
	return "", nil
}

// ForEachFieldBlob streams the distinct note field blobs for cards in the
// given decks. A nil deckIDs means no deck restriction; an empty non-nil
// slice matches nothing.
func (s *Store) ForEachFieldBlob(ctx context.Context, deckIDs []int64, filter ReviewFilter, fn func(blob string) error) error {
	if deckIDs != nil && len(deckIDs) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`SELECT DISTINCT notes.flds FROM cards INNER JOIN notes ON cards.nid = notes.id`)
	if filter == ReviewedOnly {
		b.WriteString(` INNER JOIN revlog ON cards.id = revlog.cid`)
	}
	var args []any
	b.WriteString(` WHERE `)
	if deckIDs != nil {
		placeholders := make([]string, len(deckIDs))
		for i, id := range deckIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		fmt.Fprintf(&b, `cards.did IN (%s) AND `, strings.Join(placeholders, ","))
	}
	if filter == ReviewedOnly {
		b.WriteString(`cards.queue > 0`)
	} else {
		b.WriteString(`cards.queue >= 0`)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return err
		}
		if err := fn(blob); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SplitFields splits a raw field blob into its ordered note fields.
func SplitFields(blob string) []string {
	return strings.Split(blob, FieldSeparator)
}
