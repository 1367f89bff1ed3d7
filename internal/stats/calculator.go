// Package stats computes per-deck Hanzi statistics.
package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/verte-zerg/hanzistats/internal/charset"
	"github.com/verte-zerg/hanzistats/internal/collection"
	"github.com/verte-zerg/hanzistats/internal/hanzi"
	"github.com/verte-zerg/hanzistats/internal/model"
	"github.com/verte-zerg/hanzistats/internal/refdata"
)

// FieldTextSource abstracts the collection access the calculator needs.
// *collection.Store implements it.
type FieldTextSource interface {
	Decks(ctx context.Context) ([]model.DeckInfo, error)
	DeckName(ctx context.Context, deckID int64) (string, error)
	DeckAndChildIDs(ctx context.Context, deckID int64) ([]int64, error)
	ForEachFieldBlob(ctx context.Context, deckIDs []int64, filter collection.ReviewFilter, fn func(blob string) error) error
}

// CharacterSets holds the two per-selection character sets.
type CharacterSets struct {
	Total    charset.Set
	Reviewed charset.Set
}

// Calculator aggregates Hanzi sets from a field-text source. Failures of
// the source degrade to empty sets so one bad deck cannot abort a batch
// report; only the read-only reference index is shared across requests.
type Calculator struct {
	src   FieldTextSource
	index *refdata.Index
	log   *zap.Logger
}

// NewCalculator builds a calculator. A nil logger disables diagnostics.
func NewCalculator(src FieldTextSource, index *refdata.Index, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{src: src, index: index, log: log}
}

// Index exposes the calculator's reference index.
func (c *Calculator) Index() *refdata.Index {
	return c.index
}

// ComputeCharacterSets resolves the deck selection and computes the total
// and reviewed character sets using one field selector.
func (c *Calculator) ComputeCharacterSets(ctx context.Context, sel model.DeckSelection, field model.FieldSelector) CharacterSets {
	deckIDs, ok := c.resolveDeckIDs(ctx, sel)
	if !ok {
		return CharacterSets{Total: charset.New(), Reviewed: charset.New()}
	}
	return CharacterSets{
		Total:    c.gather(ctx, deckIDs, collection.AnyCard, field),
		Reviewed: c.gather(ctx, deckIDs, collection.ReviewedOnly, field),
	}
}

// ComputeCombinedFieldSets unions the character sets obtained by running
// the computation independently for each field selector.
func (c *Calculator) ComputeCombinedFieldSets(ctx context.Context, sel model.DeckSelection, fields []model.FieldSelector) CharacterSets {
	out := CharacterSets{Total: charset.New(), Reviewed: charset.New()}
	for _, field := range fields {
		sets := c.ComputeCharacterSets(ctx, sel, field)
		out.Total = out.Total.Union(sets.Total)
		out.Reviewed = out.Reviewed.Union(sets.Reviewed)
	}
	return out
}

// resolveDeckIDs maps a selection to a concrete id set. Nil means no
// restriction. The false return marks a failed or empty resolution.
func (c *Calculator) resolveDeckIDs(ctx context.Context, sel model.DeckSelection) ([]int64, bool) {
	if sel.DeckID == model.AllDecksID {
		return nil, true
	}
	if sel.Subdecks == model.SubdecksAll {
		ids, err := c.src.DeckAndChildIDs(ctx, sel.DeckID)
		if err != nil {
			c.log.Warn("failed to resolve deck subtree", zap.Int64("deck", sel.DeckID), zap.Error(err))
			return nil, false
		}
		if len(ids) == 0 {
			return nil, false
		}
		return ids, true
	}
	return []int64{sel.DeckID}, true
}

func (c *Calculator) gather(ctx context.Context, deckIDs []int64, filter collection.ReviewFilter, field model.FieldSelector) charset.Set {
	var acc []string
	err := c.src.ForEachFieldBlob(ctx, deckIDs, filter, func(blob string) error {
		fields := collection.SplitFields(blob)
		acc = append(acc, hanzi.ExtractFields(fields, field).Sorted()...)
		return nil
	})
	if err != nil {
		c.log.Warn("field text query failed, treating as empty",
			zap.Int64s("decks", deckIDs), zap.Int("filter", int(filter)), zap.Error(err))
		return charset.New()
	}
	return charset.New(acc...)
}
