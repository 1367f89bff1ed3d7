package report

import (
	"fmt"
	"io"
)

// RenderBatch writes a plain-text rendering of every deck report.
func RenderBatch(w io.Writer, batch BatchReport) error {
	for i, deck := range batch.Decks {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ""); err != nil {
				return err
			}
		}
		if err := RenderDeck(w, deck); err != nil {
			return err
		}
	}
	if len(batch.Decks) == 0 {
		_, err := fmt.Fprintln(w, "No decks found.")
		return err
	}
	return nil
}

// RenderDeck writes a plain-text rendering of one deck report: the
// summary counts followed by one table per classification scheme.
func RenderDeck(w io.Writer, deck DeckReport) error {
	if _, err := fmt.Fprintln(w, deck.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Hanzi:    %d\n", deck.TotalCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Reviewed Hanzi: %d (%.1f%%)\n", deck.ReviewedCount, deck.ReviewedPct); err != nil {
		return err
	}

	for _, breakdown := range deck.Breakdown {
		rows := make([][]string, 0, len(breakdown.Rows))
		for _, row := range breakdown.Rows {
			// Empty buckets stay in the data model but not in the output.
			if row.TotalCount == 0 && row.NotInDeckCount == 0 {
				continue
			}
			rows = append(rows, []string{
				row.Label,
				fmt.Sprintf("%d", row.TotalCount),
				fmt.Sprintf("%d", row.ReviewedCount),
				fmt.Sprintf("%d", row.MissingCount),
				fmt.Sprintf("%d", row.NotInDeckCount),
				fmt.Sprintf("%.1f%%", row.ReviewedPct),
			})
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", breakdown.Title); err != nil {
			return err
		}
		if len(rows) == 0 {
			if _, err := fmt.Fprintln(w, "No data available."); err != nil {
				return err
			}
			continue
		}
		headers := []string{"Category", "Total", "Reviewed", "Missing", "Not in deck", "Done"}
		rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
