// Package report assembles and renders deck statistics reports.
package report

import (
	"github.com/verte-zerg/hanzistats/internal/charset"
	"github.com/verte-zerg/hanzistats/internal/refdata"
)

// CategoryRow is one bucket of one classification scheme. Character sets
// are snapshotted as sorted slices so the structure serializes cleanly.
type CategoryRow struct {
	Label          string   `json:"label"`
	TotalCount     int      `json:"total_count"`
	ReviewedCount  int      `json:"reviewed_count"`
	MissingCount   int      `json:"missing_count"`
	NotInDeckCount int      `json:"not_in_deck_count"`
	ReviewedPct    float64  `json:"reviewed_pct"`
	Total          []string `json:"total"`
	Reviewed       []string `json:"reviewed"`
	Missing        []string `json:"missing"`
	NotInDeck      []string `json:"not_in_deck"`
}

// SchemeBreakdown holds the rows of one scheme in presentation order.
type SchemeBreakdown struct {
	Scheme refdata.Scheme `json:"scheme"`
	Title  string         `json:"title"`
	Rows   []CategoryRow  `json:"rows"`
}

// DeckReport is the serializable per-deck summary.
type DeckReport struct {
	DeckID        int64             `json:"deck_id"`
	Name          string            `json:"name"`
	TotalCount    int               `json:"total_count"`
	ReviewedCount int               `json:"reviewed_count"`
	ReviewedPct   float64           `json:"reviewed_pct"`
	Total         []string          `json:"total"`
	Reviewed      []string          `json:"reviewed"`
	Missing       []string          `json:"missing"`
	Breakdown     []SchemeBreakdown `json:"breakdown,omitempty"`
}

// BatchReport wraps per-deck reports, preserving the caller's order.
type BatchReport struct {
	Decks []DeckReport `json:"decks"`
}

// SchemeTitle maps a scheme to its display title.
func SchemeTitle(scheme refdata.Scheme) string {
	switch scheme {
	case refdata.SchemeHSK2012:
		return "HSK 2012"
	case refdata.SchemeHSK2021:
		return "HSK 2021"
	case refdata.SchemeFrequency:
		return "Frequency"
	}
	return string(scheme)
}

// BuildDeckReport assembles a deck report from the computed character
// sets. Reviewed is not forced to be a subset of total: missing is the
// plain set difference, and the percentage comes from the raw counts (0
// when total is empty). A nil index skips breakdowns regardless of
// withBreakdown.
func BuildDeckReport(deckID int64, name string, total, reviewed charset.Set, index *refdata.Index, withBreakdown bool) DeckReport {
	missing := total.Diff(reviewed)
	rep := DeckReport{
		DeckID:        deckID,
		Name:          name,
		TotalCount:    total.Len(),
		ReviewedCount: reviewed.Len(),
		ReviewedPct:   pct(reviewed.Len(), total.Len()),
		Total:         total.Sorted(),
		Reviewed:      reviewed.Sorted(),
		Missing:       missing.Sorted(),
	}
	if !withBreakdown || index == nil {
		return rep
	}

	totalCat := index.Categorize(total)
	reviewedCat := index.Categorize(reviewed)
	for _, scheme := range refdata.Schemes {
		breakdown := SchemeBreakdown{Scheme: scheme, Title: SchemeTitle(scheme)}
		for _, label := range index.BucketLabels(scheme) {
			totalBucket := totalCat[scheme][label]
			reviewedBucket := reviewedCat[scheme][label]
			missingBucket := totalBucket.Diff(reviewedBucket)
			notInDeck := index.OfficialSet(scheme, label).Diff(totalBucket)
			breakdown.Rows = append(breakdown.Rows, CategoryRow{
				Label:          label,
				TotalCount:     totalBucket.Len(),
				ReviewedCount:  reviewedBucket.Len(),
				MissingCount:   missingBucket.Len(),
				NotInDeckCount: notInDeck.Len(),
				ReviewedPct:    pct(reviewedBucket.Len(), totalBucket.Len()),
				Total:          totalBucket.Sorted(),
				Reviewed:       reviewedBucket.Sorted(),
				Missing:        missingBucket.Sorted(),
				NotInDeck:      notInDeck.Sorted(),
			})
		}
		rep.Breakdown = append(rep.Breakdown, breakdown)
	}
	return rep
}

// BuildBatchReport wraps deck reports in caller order.
func BuildBatchReport(decks []DeckReport) BatchReport {
	return BatchReport{Decks: decks}
}

// pct returns part/whole as a percentage, 0 when whole is 0.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
