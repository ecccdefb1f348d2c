package tastinglog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

// Column positions in an exported tasting log without a recognizable header.
const (
	colWine = iota
	colRating
	colArticle
	colNotes
)

// Load reads a tasting-log CSV export. The expected columns are wine name,
// rating, article number and notes; a header row is detected by name and
// may reorder them. Rows with an unparsable rating are skipped, not fatal.
// An unreadable file degrades to an empty log with a returned error so the
// caller can log it and continue unprofiled.
func Load(path string, logger *zap.Logger) ([]domain.TastingEntry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tasting log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse tasting log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := map[string]int{
		"wine":    colWine,
		"rating":  colRating,
		"article": colArticle,
		"notes":   colNotes,
	}
	rows := records
	if header := headerColumns(records[0]); header != nil {
		cols = header
		rows = records[1:]
	}

	var entries []domain.TastingEntry
	skipped := 0
	for _, row := range rows {
		entry, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	logger.Info("tasting log loaded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
		zap.Int("skipped", skipped))
	return entries, nil
}

// headerColumns maps recognized header names to their positions, or nil
// when the first row does not look like a header.
func headerColumns(row []string) map[string]int {
	cols := make(map[string]int)
	for i, cell := range row {
		switch normalizeHeader(cell) {
		case "wine", "winename", "name", "vin":
			cols["wine"] = i
		case "rating", "betyg", "score":
			cols["rating"] = i
		case "article", "articlenumber", "artikelnummer", "productid":
			cols["article"] = i
		case "notes", "note", "anteckningar":
			cols["notes"] = i
		}
	}
	if _, ok := cols["wine"]; !ok {
		return nil
	}
	if _, ok := cols["rating"]; !ok {
		return nil
	}
	return cols
}

func normalizeHeader(cell string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "")
}

func parseRow(row []string, cols map[string]int) (domain.TastingEntry, bool) {
	name := cellAt(row, cols, "wine")
	if name == "" {
		return domain.TastingEntry{}, false
	}
	rating, err := strconv.ParseFloat(strings.ReplaceAll(cellAt(row, cols, "rating"), ",", "."), 64)
	if err != nil {
		return domain.TastingEntry{}, false
	}
	return domain.TastingEntry{
		WineName:      name,
		Rating:        rating,
		ArticleNumber: cellAt(row, cols, "article"),
		Notes:         cellAt(row, cols, "notes"),
	}, true
}

func cellAt(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
