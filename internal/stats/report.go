package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/hanzistats/internal/model"
	"github.com/verte-zerg/hanzistats/internal/report"
)

// DeckReport computes the full report for one deck selection.
func (c *Calculator) DeckReport(ctx context.Context, deckID int64, cfg model.ReportConfig) report.DeckReport {
	name, err := c.src.DeckName(ctx, deckID)
	if err != nil {
		c.log.Warn("failed to resolve deck name", zap.Int64("deck", deckID), zap.Error(err))
	}
	if name == "" {
		name = fmt.Sprintf("Deck %d", deckID)
	}

	sel := model.DeckSelection{DeckID: deckID, Subdecks: model.SubdecksNone}
	if cfg.IncludeSubdecks {
		sel.Subdecks = model.SubdecksAll
	}
	sets := c.ComputeCharacterSets(ctx, sel, cfg.FieldMode)
	return report.BuildDeckReport(deckID, name, sets.Total, sets.Reviewed, c.index, cfg.ShowCategories)
}

// AllDecksReport computes reports for every top-level deck, in deck-list
// order. Sub-decks are folded into their parents when cfg.IncludeSubdecks
// is set and skipped as standalone entries either way. A failing deck
// list yields an empty batch, not an error.
func (c *Calculator) AllDecksReport(ctx context.Context, cfg model.ReportConfig) report.BatchReport {
	decks, err := c.src.Decks(ctx)
	if err != nil {
		c.log.Warn("failed to list decks", zap.Error(err))
		return report.BuildBatchReport(nil)
	}
	var reports []report.DeckReport
	for _, deck := range decks {
		if deck.ID == model.AllDecksID || deck.IsSubdeck() {
			continue
		}
		reports = append(reports, c.DeckReport(ctx, deck.ID, cfg))
	}
	return report.BuildBatchReport(reports)
}
