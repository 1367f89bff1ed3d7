package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Category", "Total"}
	rows := [][]string{
		{"Level 1", "10"},
		{"中文字", "3"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Category  Total" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Level 1      10" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	// Hanzi occupy two cells each; padding must use display width.
	if lines[2] != "中文字        3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
