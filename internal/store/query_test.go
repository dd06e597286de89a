package store

import (
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestFeaturedQuery_ToSQL(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     FeaturedQuery
		wantWhere string
		wantOrder string
		wantArgs  pgx.NamedArgs
	}{
		{
			name:      "zero query",
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"limit": 50, "offset": 0},
		},
		{
			name:      "source",
			query:     FeaturedQuery{Source: ptr(domain.SourceSlickdeals)},
			wantWhere: " WHERE source = @source",
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"source": "slickdeals", "limit": 50, "offset": 0},
		},
		{
			name: "every filter",
			query: FeaturedQuery{
				Source:   ptr(domain.SourceEbay),
				Category: ptr(domain.CategoryTVs),
				MinScore: ptr(70),
				Since:    &since,
				Limit:    25,
				Offset:   100,
			},
			wantWhere: " WHERE source = @source AND category = @category AND score >= @min_score AND first_seen_at >= @since",
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs: pgx.NamedArgs{
				"source":    "ebay",
				"category":  "tvs",
				"min_score": 70,
				"since":     since,
				"limit":     25,
				"offset":    100,
			},
		},
		{
			name:      "by discount",
			query:     FeaturedQuery{OrderBy: "discount"},
			wantOrder: "discount DESC, score DESC",
			wantArgs:  pgx.NamedArgs{"limit": 50, "offset": 0},
		},
		{
			name:      "by first seen",
			query:     FeaturedQuery{OrderBy: "first_seen_at"},
			wantOrder: "first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"limit": 50, "offset": 0},
		},
		{
			name:      "unknown order is never interpolated",
			query:     FeaturedQuery{OrderBy: "score; DROP TABLE featured_deals"},
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"limit": 50, "offset": 0},
		},
		{
			name:      "paging is clamped",
			query:     FeaturedQuery{Limit: 1000, Offset: -5},
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"limit": 500, "offset": 0},
		},
		{
			name:      "negative limit uses default",
			query:     FeaturedQuery{Limit: -10},
			wantOrder: "score DESC, first_seen_at DESC",
			wantArgs:  pgx.NamedArgs{"limit": 50, "offset": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL()

			assert.Equal(t, "SELECT COUNT(*) FROM featured_deals"+tt.wantWhere, countSQL)
			assert.True(t, strings.HasPrefix(dataSQL, "SELECT id, source, source_id"))
			assert.True(t, strings.HasSuffix(dataSQL,
				" FROM featured_deals"+tt.wantWhere+" ORDER BY "+tt.wantOrder+" LIMIT @limit OFFSET @offset"),
				dataSQL)
			assert.NotContains(t, dataSQL, "DROP")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
