package store

// SQL query constants. PostgresStore methods reference these; nothing else
// builds SQL except FeaturedQuery.ToSQL.

const featuredColumns = `id, source, source_id, title, source_url, image_url,
	current_price, original_price, discount, category, item_condition,
	score, verdict, reasons, posted_at, first_seen_at, updated_at, notified_at`

// Featured deal queries.
const (
	// xmax is zero only for a row this statement inserted.
	queryUpsertFeaturedDeal = `
		INSERT INTO featured_deals (
			source, source_id, title, source_url, image_url,
			current_price, original_price, discount, category, item_condition,
			score, verdict, reasons, posted_at, first_seen_at, updated_at
		) VALUES (
			@source, @source_id, @title, @source_url, @image_url,
			@current_price, @original_price, @discount, @category, @condition,
			@score, @verdict, @reasons, @posted_at, now(), now()
		)
		ON CONFLICT (source, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			source_url = EXCLUDED.source_url,
			image_url = EXCLUDED.image_url,
			current_price = EXCLUDED.current_price,
			original_price = EXCLUDED.original_price,
			discount = EXCLUDED.discount,
			category = EXCLUDED.category,
			item_condition = EXCLUDED.item_condition,
			score = EXCLUDED.score,
			verdict = EXCLUDED.verdict,
			reasons = EXCLUDED.reasons,
			posted_at = EXCLUDED.posted_at,
			updated_at = now()
		RETURNING id, first_seen_at, updated_at, notified_at, (xmax = 0) AS inserted`

	queryGetFeaturedDeal = `SELECT ` + featuredColumns + `
		FROM featured_deals
		WHERE id = $1`

	queryListUnnotifiedDeals = `SELECT ` + featuredColumns + `
		FROM featured_deals
		WHERE notified_at IS NULL AND score >= $1
		ORDER BY score DESC, first_seen_at ASC
		LIMIT $2`

	queryMarkNotified = `
		UPDATE featured_deals
		SET notified_at = now()
		WHERE id = ANY($1::uuid[]) AND notified_at IS NULL`

	queryPruneFeaturedDeals = `
		DELETE FROM featured_deals
		WHERE updated_at < $1`
)
