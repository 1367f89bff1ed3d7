package refdata

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Reference table file names inside the datasets directory.
const (
	LevelTableFile       = "hsk30-chars.csv"
	CompilationTableFile = "mega_hanzi_compilation.csv"
)

// hskColumnPrefix is the literal prefix carried by the compilation table's
// embedded HSK 2012 level strings ("HSK3").
const hskColumnPrefix = "HSK"

// bands79Marker is the level table's range marker for the combined top
// bands; it collapses to band 7.
const bands79Marker = "7-9"

// Load builds an index from the reference CSVs in dir. Loading never
// fails: a missing or unreadable file and malformed rows are skipped with
// one diagnostic each, leaving a partial index.
func Load(dir string, opts Options) *Index {
	x := NewIndex(opts)
	x.loadFile(filepath.Join(dir, LevelTableFile), x.ReadLevelTable)
	x.loadFile(filepath.Join(dir, CompilationTableFile), x.ReadCompilationTable)
	return x
}

func (x *Index) loadFile(path string, read func(io.Reader) error) {
	f, err := os.Open(path)
	if err != nil {
		x.log.Warn("reference table unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only reference data.
			_ = cerr
		}
	}()
	if err := read(f); err != nil {
		x.log.Warn("reference table unreadable", zap.String("path", path), zap.Error(err))
	}
}

// ReadLevelTable loads the HSK 2021 level table (Hanzi, Level,
// Traditional). The "7-9" range marker collapses to band 7; rows with an
// unparseable level are skipped.
func (x *Index) ReadLevelTable(r io.Reader) error {
	rows, header, err := readCSV(r)
	if err != nil {
		return err
	}
	charCol, ok := header["hanzi"]
	if !ok {
		return errors.New("level table has no Hanzi column")
	}
	levelCol, ok := header["level"]
	if !ok {
		return errors.New("level table has no Level column")
	}
	tradCol, hasTrad := header["traditional"]

	skipped := 0
	for _, row := range rows {
		if charCol >= len(row) || levelCol >= len(row) {
			skipped++
			continue
		}
		ch := strings.TrimSpace(row[charCol])
		level, ok := parseBand(strings.TrimSpace(row[levelCol]))
		if ch == "" || !ok {
			skipped++
			continue
		}
		x.hsk2021[ch] = level
		if hasTrad && tradCol < len(row) {
			if trad := strings.TrimSpace(row[tradCol]); trad != "" && trad != ch {
				x.hsk2021[trad] = level
			}
		}
	}
	if skipped > 0 {
		x.log.Warn("skipped malformed level table rows", zap.Int("rows", skipped))
	}
	return nil
}

// ReadCompilationTable loads the frequency/compilation table (simplified,
// traditional, frequency_junda, optional embedded hsk_2012 level).
func (x *Index) ReadCompilationTable(r io.Reader) error {
	rows, header, err := readCSV(r)
	if err != nil {
		return err
	}
	simpCol, ok := header["simplified"]
	if !ok {
		return errors.New("compilation table has no simplified column")
	}
	tradCol, hasTrad := header["traditional"]
	freqCol, hasFreq := header["frequency_junda"]
	hskCol, hasHSK := header["hsk_2012"]

	skipped := 0
	for _, row := range rows {
		if simpCol >= len(row) {
			skipped++
			continue
		}
		simp := strings.TrimSpace(row[simpCol])
		if simp == "" {
			skipped++
			continue
		}
		trad := ""
		if hasTrad && tradCol < len(row) {
			trad = strings.TrimSpace(row[tradCol])
		}

		if hasFreq && freqCol < len(row) {
			if rank, err := strconv.Atoi(strings.TrimSpace(row[freqCol])); err == nil && rank > 0 {
				x.rank[simp] = rank
				if trad != "" && trad != simp {
					x.rank[trad] = rank
				}
			}
		}

		if hasHSK && hskCol < len(row) {
			if level, ok := parseEmbeddedLevel(row[hskCol]); ok {
				x.hsk2012[simp] = level
				if trad != "" && trad != simp {
					x.hsk2012[trad] = level
				}
			}
		}
	}
	if skipped > 0 {
		x.log.Warn("skipped malformed compilation table rows", zap.Int("rows", skipped))
	}
	return nil
}

// readCSV reads all records, returning the data rows and a lower-cased
// header name -> column index map. Rows with a deviating field count are
// kept; callers bounds-check per column.
func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, errors.New("empty table")
		}
		return nil, nil, err
	}
	header := make(map[string]int, len(head))
	for i, name := range head {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip and keep reading from the next line.
			continue
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// parseBand parses a level table value: a plain integer or the "7-9"
// range marker.
func parseBand(s string) (int, bool) {
	if s == bands79Marker {
		return 7, true
	}
	level, err := strconv.Atoi(s)
	if err != nil || level < 1 || level > 9 {
		return 0, false
	}
	return level, true
}

// parseEmbeddedLevel strips the "HSK" prefix from a compilation table
// level string and keeps the value only when it is a valid 2012 level.
func parseEmbeddedLevel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, hskColumnPrefix))
	level, err := strconv.Atoi(s)
	if err != nil || level < 1 || level > 6 {
		return 0, false
	}
	return level, true
}
