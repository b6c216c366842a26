// Package export writes expenses as CSV in the layout the "spend" importer
// reads, so an export can be imported again elsewhere.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/spend/internal/expense"
)

var header = []string{"name", "amount", "category", "date"}

// Source provides the expenses to export.
type Source interface {
	Expenses() []expense.Expense
}

type Service struct {
	source Source
	now    func() time.Time
}

func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// WriteCSV writes every expense, newest first, and returns how many were written.
func (s *Service) WriteCSV(w io.Writer) (int, error) {
	items := s.source.Expenses()

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, e := range items {
		record := []string{e.Name, e.Amount.String(), string(e.Category), e.Date.Format(time.RFC3339)}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(items), nil
}

// Export writes a timestamped CSV file into outputDir and returns its path.
func (s *Service) Export(outputDir string) (string, int, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, s.Filename())

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	n, err := s.WriteCSV(f)
	if err != nil {
		return "", 0, err
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("closing %s: %w", path, err)
	}

	return path, n, nil
}

// Filename names an export after the moment it was taken, e.g. spend-20260131-094500.csv.
func (s *Service) Filename() string {
	return fmt.Sprintf("spend-%s.csv", s.now().Format("20060102-150405"))
}
