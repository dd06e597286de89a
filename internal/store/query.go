package store

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// FeaturedQuery.OrderBy values. Anything else sorts by score.
const (
	orderByScore     = "score"
	orderByDiscount  = "discount"
	orderByFirstSeen = "first_seen_at"
)

var orderClauses = map[string]string{
	orderByScore:     "score DESC, first_seen_at DESC",
	orderByDiscount:  "discount DESC, score DESC",
	orderByFirstSeen: "first_seen_at DESC",
}

// page returns the effective limit and offset: limit defaults to 50 and is
// capped at 500, offset is never negative.
func (q *FeaturedQuery) page() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return min(limit, maxLimit), max(q.Offset, 0)
}

func (q *FeaturedQuery) orderClause() string {
	if c, ok := orderClauses[q.OrderBy]; ok {
		return c
	}
	return orderClauses[orderByScore]
}

// where renders the filter predicates, joined with AND, and fills args.
func (q *FeaturedQuery) where(args pgx.NamedArgs) string {
	var preds []string
	if q.Source != nil {
		preds = append(preds, "source = @source")
		args["source"] = string(*q.Source)
	}
	if q.Category != nil {
		preds = append(preds, "category = @category")
		args["category"] = string(*q.Category)
	}
	if q.MinScore != nil {
		preds = append(preds, "score >= @min_score")
		args["min_score"] = *q.MinScore
	}
	if q.Since != nil {
		preds = append(preds, "first_seen_at >= @since")
		args["since"] = *q.Since
	}
	if len(preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(preds, " AND ")
}

// ToSQL renders one page of the query and the matching unpaged count. Both
// statements take the returned named arguments.
func (q *FeaturedQuery) ToSQL() (dataSQL, countSQL string, args pgx.NamedArgs) {
	args = pgx.NamedArgs{}
	where := q.where(args)
	args["limit"], args["offset"] = q.page()

	dataSQL = "SELECT " + featuredColumns + " FROM featured_deals" + where +
		" ORDER BY " + q.orderClause() + " LIMIT @limit OFFSET @offset"
	countSQL = "SELECT COUNT(*) FROM featured_deals" + where
	return dataSQL, countSQL, args
}
