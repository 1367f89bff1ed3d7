package collection

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hanzistats/internal/model"
)

// buildCollection creates a minimal Anki-shaped database and returns its
// path. Deck names are stored with the modern \x1f separator.
func buildCollection(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.anki2")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	stmts := []string{
		`CREATE TABLE decks (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, flds TEXT NOT NULL)`,
		`CREATE TABLE cards (id INTEGER PRIMARY KEY, nid INTEGER NOT NULL, did INTEGER NOT NULL, queue INTEGER NOT NULL)`,
		`CREATE TABLE revlog (id INTEGER PRIMARY KEY, cid INTEGER NOT NULL)`,

		`INSERT INTO decks (id, name) VALUES (1, 'Chinese')`,
		`INSERT INTO decks (id, name) VALUES (2, 'Chinese` + FieldSeparator + `HSK1')`,
		`INSERT INTO decks (id, name) VALUES (3, 'Japanese')`,

		`INSERT INTO notes (id, flds) VALUES (10, '你好` + FieldSeparator + `hello')`,
		`INSERT INTO notes (id, flds) VALUES (11, '世界` + FieldSeparator + `world')`,
		`INSERT INTO notes (id, flds) VALUES (12, '中文` + FieldSeparator + `chinese')`,
		`INSERT INTO notes (id, flds) VALUES (13, '停` + FieldSeparator + `suspended')`,

		// Deck 1: one reviewed card, one new card.
		`INSERT INTO cards (id, nid, did, queue) VALUES (100, 10, 1, 2)`,
		`INSERT INTO cards (id, nid, did, queue) VALUES (101, 11, 1, 0)`,
		// Subdeck 2: a reviewed card.
		`INSERT INTO cards (id, nid, did, queue) VALUES (102, 12, 2, 2)`,
		// Suspended card never counts.
		`INSERT INTO cards (id, nid, did, queue) VALUES (103, 13, 1, -1)`,

		`INSERT INTO revlog (id, cid) VALUES (1000, 100)`,
		`INSERT INTO revlog (id, cid) VALUES (1001, 100)`,
		`INSERT INTO revlog (id, cid) VALUES (1002, 102)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "stmt: %s", stmt)
	}
	return path
}

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(buildCollection(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.anki2"), nil)
	require.Error(t, err)
}

func TestDecks(t *testing.T) {
	st := openStore(t)
	decks, err := st.Decks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 4)
	assert.Equal(t, model.DeckInfo{ID: 0, Name: "All Decks"}, decks[0])
	assert.Equal(t, "Chinese", decks[1].Name)
	assert.Equal(t, "Chinese::HSK1", decks[2].Name)
	assert.True(t, decks[2].IsSubdeck())
	assert.Equal(t, "Japanese", decks[3].Name)
}

func TestDecksFromColJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.anki2")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE col (id INTEGER PRIMARY KEY, decks TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO col (id, decks) VALUES (1, '{"1": {"name": "Default"}, "5": {"name": "Chinese::HSK2"}}')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	st, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	decks, err := st.Decks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 3)
	assert.Equal(t, "Chinese::HSK2", decks[1].Name)
	assert.Equal(t, int64(5), decks[1].ID)
	assert.Equal(t, "Default", decks[2].Name)
}

func TestDeckAndChildIDs(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	ids, err := st.DeckAndChildIDs(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	ids, err = st.DeckAndChildIDs(ctx, 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3}, ids)

	ids, err = st.DeckAndChildIDs(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeckName(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	name, err := st.DeckName(ctx, model.AllDecksID)
	require.NoError(t, err)
	assert.Equal(t, "All Decks", name)

	name, err = st.DeckName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Chinese::HSK1", name)

	name, err = st.DeckName(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func collectBlobs(t *testing.T, st *Store, deckIDs []int64, filter ReviewFilter) []string {
	t.Helper()
	var blobs []string
	err := st.ForEachFieldBlob(context.Background(), deckIDs, filter, func(blob string) error {
		blobs = append(blobs, blob)
		return nil
	})
	require.NoError(t, err)
	return blobs
}

func TestForEachFieldBlob(t *testing.T) {
	st := openStore(t)

	// All decks, any active card: suspended note 13 is excluded.
	blobs := collectBlobs(t, st, nil, AnyCard)
	assert.Len(t, blobs, 3)

	// Deck 1 only.
	blobs = collectBlobs(t, st, []int64{1}, AnyCard)
	assert.Len(t, blobs, 2)

	// Reviewed cards in deck 1: only the revlog-backed card, and DISTINCT
	// collapses its duplicate review entries.
	blobs = collectBlobs(t, st, []int64{1}, ReviewedOnly)
	require.Len(t, blobs, 1)
	assert.Equal(t, []string{"你好", "hello"}, SplitFields(blobs[0]))

	// Deck subtree.
	blobs = collectBlobs(t, st, []int64{1, 2}, ReviewedOnly)
	assert.Len(t, blobs, 2)

	// Empty non-nil id set matches nothing.
	blobs = collectBlobs(t, st, []int64{}, AnyCard)
	assert.Empty(t, blobs)
}
