package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// table buffers rows and prints them as aligned columns.
type table struct {
	rows [][]string
}

func newTable(header ...string) *table {
	return &table{rows: [][]string{header}}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range t.rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// writeResult prints the deals, then a per-source status table and a
// one-line total.
func writeResult(w io.Writer, r *domain.AggregatorResult) error {
	deals := newTable("SCORE", "PRICE", "DISC", "SOURCE", "CATEGORY", "TITLE")
	for i := range r.Deals {
		d := &r.Deals[i]
		deals.add(
			strconv.Itoa(d.Overall()),
			fmt.Sprintf("$%.2f", d.CurrentPrice),
			strconv.Itoa(d.Discount)+"%",
			string(d.Source),
			string(d.Category),
			truncate(d.Title, 60),
		)
	}
	if err := deals.render(w); err != nil {
		return err
	}

	sources := newTable("")
	for _, s := range r.Sources {
		status := "ok"
		if !s.Success {
			status = "failed: " + s.Error
		}
		sources.add(string(s.Source), fmt.Sprintf("%d deals", s.Count), status)
	}
	if err := sources.render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d fetched, %d after dedup in %s\n", r.TotalFetched, r.TotalAfterDedup, r.FetchTime)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if r := []rune(s); len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
