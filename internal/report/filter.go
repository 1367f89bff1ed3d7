package report

import (
	"strings"

	"github.com/verte-zerg/hanzistats/internal/refdata"
)

// FilterCategories returns a copy of the batch keeping only the
// breakdowns selected by the presentation labels ("HSK (2012)",
// "HSK (2021)", "Top 500", ...). An empty label list keeps everything.
func FilterCategories(batch BatchReport, labels []string) BatchReport {
	if len(labels) == 0 {
		return batch
	}
	keep := map[refdata.Scheme]bool{}
	for _, label := range labels {
		switch {
		case strings.Contains(label, "HSK (2012)"):
			keep[refdata.SchemeHSK2012] = true
		case strings.Contains(label, "HSK (2021)"), strings.Contains(label, "HSK (2020)"):
			keep[refdata.SchemeHSK2021] = true
		case strings.Contains(label, "Top"):
			keep[refdata.SchemeFrequency] = true
		}
	}
	out := BatchReport{Decks: make([]DeckReport, len(batch.Decks))}
	for i, deck := range batch.Decks {
		filtered := deck
		filtered.Breakdown = nil
		for _, breakdown := range deck.Breakdown {
			if keep[breakdown.Scheme] {
				filtered.Breakdown = append(filtered.Breakdown, breakdown)
			}
		}
		out.Decks[i] = filtered
	}
	return out
}
