package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/deal-aggregator/internal/api/client"
	"github.com/donaldgifford/deal-aggregator/internal/cache"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printDealsTable(w io.Writer, deals []domain.NormalizedDeal) error {
	tw := newTabWriter(w)
	tw.writef("SCORE\tPRICE\tDISC\tSOURCE\tCATEGORY\tTITLE\n")
	for i := range deals {
		d := &deals[i]
		score := "-"
		if d.AIScore != nil {
			score = fmt.Sprintf("%d", d.AIScore.Overall)
			if d.AIScore.Suspicious {
				score += "!"
			}
		}
		tw.writef("%s\t$%.2f\t%d%%\t%s\t%s\t%s\n",
			score,
			d.CurrentPrice,
			d.Discount,
			d.Source,
			d.Category,
			truncate(d.Title, 50),
		)
	}
	return tw.finish()
}

func printSourceSummary(w io.Writer, res *domain.AggregatorResult) error {
	tw := newTabWriter(w)
	tw.writef("\n")
	for _, s := range res.Sources {
		status := "ok"
		if !s.Success {
			status = "failed: " + s.Error
		}
		tw.writef("%s\t%d\t%s\n", s.Source.DisplayName(), s.Count, status)
	}
	cached := ""
	if res.Cached {
		cached = " (cached)"
	}
	tw.writef("%d fetched, %d after dedup%s\n", res.TotalFetched, res.TotalAfterDedup, cached)
	return tw.finish()
}

func printFeaturedTable(w io.Writer, deals []domain.FeaturedDeal) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSCORE\tPRICE\tDISC\tSOURCE\tFIRST SEEN\tTITLE\n")
	for i := range deals {
		d := &deals[i]
		tw.writef("%s\t%d\t$%.2f\t%d%%\t%s\t%s\t%s\n",
			d.ID,
			d.Score,
			d.CurrentPrice,
			d.Discount,
			d.Source,
			d.FirstSeenAt.Local().Format(timeLayout),
			truncate(d.Title, 40),
		)
	}
	return tw.finish()
}

func printFeaturedDetail(w io.Writer, d *domain.FeaturedDeal) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", d.ID)
	tw.writef("Title:\t%s\n", d.Title)
	tw.writef("Source:\t%s (%s)\n", d.Source.DisplayName(), d.SourceID)
	tw.writef("Price:\t$%.2f\n", d.CurrentPrice)
	if d.OriginalPrice > d.CurrentPrice {
		tw.writef("Was:\t$%.2f (-%d%%)\n", d.OriginalPrice, d.Discount)
	}
	tw.writef("Category:\t%s\n", d.Category)
	tw.writef("Condition:\t%s\n", d.Condition)
	tw.writef("Score:\t%d/100\n", d.Score)
	tw.writef("Verdict:\t%s\n", d.Verdict)
	if len(d.Reasons) > 0 {
		tw.writef("Reasons:\t%s\n", strings.Join(d.Reasons, "; "))
	}
	tw.writef("First Seen:\t%s\n", d.FirstSeenAt.Local().Format(timeLayout))
	if d.NotifiedAt != nil {
		tw.writef("Alerted:\t%s\n", d.NotifiedAt.Local().Format(timeLayout))
	}
	tw.writef("URL:\t%s\n", d.SourceURL)
	return tw.finish()
}

func printSourcesTable(w io.Writer, sources []apiclient.SourceStatus) error {
	tw := newTabWriter(w)
	tw.writef("SOURCE\tENABLED\tCONFIGURED\tTODAY\tLIMIT\tREMAINING\tRESETS\n")
	for i := range sources {
		s := &sources[i]
		limit, remaining := "-", "-"
		if s.DailyLimit > 0 {
			limit = fmt.Sprintf("%d", s.DailyLimit)
			remaining = fmt.Sprintf("%d", s.Remaining)
		}
		tw.writef("%s\t%v\t%v\t%d\t%s\t%s\t%s\n",
			s.Name,
			s.Enabled,
			s.Configured,
			s.RequestsToday,
			limit,
			remaining,
			s.ResetAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func printCacheStats(w io.Writer, s *cache.Stats) error {
	tw := newTabWriter(w)
	tw.writef("Entries:\t%d\n", s.Entries)
	tw.writef("Hits:\t%d\n", s.Hits)
	tw.writef("Misses:\t%d\n", s.Misses)
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
