package training

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
)

// History is the table of per-epoch metrics returned by a training run.
//
// The first appended row fixes the columns; every later row must carry
// exactly the same keys. Rows are indexed by their 1-based epoch.
type History struct {
	columns []string
	epochs  []int
	rows    []*Snapshot
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Append adds the row of epoch. The row is copied.
func (h *History) Append(epoch int, row *Snapshot) error {
	if h.columns == nil {
		h.columns = row.Keys()
	} else if !sameKeys(h.columns, row) {
		return errors.Wrapf(ErrSchemaMismatch, "epoch %d has columns %v, want %v", epoch, row.Keys(), h.columns)
	}
	h.epochs = append(h.epochs, epoch)
	h.rows = append(h.rows, row.Clone())
	return nil
}

func sameKeys(columns []string, row *Snapshot) bool {
	if row.Len() != len(columns) {
		return false
	}
	for _, c := range columns {
		if _, ok := row.Get(c); !ok {
			return false
		}
	}
	return true
}

// Len returns the number of rows.
func (h *History) Len() int {
	return len(h.rows)
}

// Columns returns the column names.
func (h *History) Columns() []string {
	return append([]string(nil), h.columns...)
}

// Epochs returns the row indices.
func (h *History) Epochs() []int {
	return append([]int(nil), h.epochs...)
}

// Row returns the row recorded for epoch.
func (h *History) Row(epoch int) (*Snapshot, bool) {
	i := slices.Index(h.epochs, epoch)
	if i < 0 {
		return nil, false
	}
	return h.rows[i], true
}

// Last returns the most recent row, or nil when empty.
func (h *History) Last() *Snapshot {
	if len(h.rows) == 0 {
		return nil
	}
	return h.rows[len(h.rows)-1]
}

// Column returns the values of name across epochs, or nil for an unknown column.
func (h *History) Column(name string) []float64 {
	if !slices.Contains(h.columns, name) {
		return nil
	}
	values := make([]float64, len(h.rows))
	for i, row := range h.rows {
		values[i], _ = row.Get(name)
	}
	return values
}

// Render draws the history as a bordered table.
func (h *History) Render() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{"epoch"}, h.columns...)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, row := range h.rows {
		cells := []string{strconv.Itoa(h.epochs[i])}
		for _, c := range h.columns {
			v, _ := row.Get(c)
			cells = append(cells, formatValue(c, v))
		}
		t.Row(cells...)
	}
	return t.String()
}

// WriteCSV writes the history with a leading "epoch" column.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"epoch"}, h.columns...)); err != nil {
		return errors.Wrap(err, "failed to write history header")
	}
	for i, row := range h.rows {
		record := []string{strconv.Itoa(h.epochs[i])}
		for _, c := range h.columns {
			v, _ := row.Get(c)
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write history row of epoch %d", h.epochs[i])
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush history")
}

// formatValue renders a metric the way the progress line does.
func formatValue(name string, v float64) string {
	if name == lrColumn {
		return fmt.Sprintf("%.0e", v)
	}
	return fmt.Sprintf("%.4f", v)
}
