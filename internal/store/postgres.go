package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A non-positive poolSize selects the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	if poolSize > 0 {
		cfg.MaxConns = int32(min(poolSize, 1<<15)) //nolint:gosec // bounded above
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.ApplyMigrations(ctx)
	return err
}

// ApplyMigrations is Migrate, reporting the versions it applied.
func (s *PostgresStore) ApplyMigrations(ctx context.Context) ([]string, error) {
	return RunMigrations(ctx, s.pool)
}

// MigrationStatus reports which embedded migrations have been applied.
func (s *PostgresStore) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	return MigrationStatus(ctx, s.pool)
}

// UpsertFeaturedDeal inserts or refreshes a deal keyed by (source, source_id).
func (s *PostgresStore) UpsertFeaturedDeal(ctx context.Context, d *domain.FeaturedDeal) (bool, error) {
	reasons := d.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	args := pgx.NamedArgs{
		"source":         string(d.Source),
		"source_id":      d.SourceID,
		"title":          d.Title,
		"source_url":     d.SourceURL,
		"image_url":      d.ImageURL,
		"current_price":  d.CurrentPrice,
		"original_price": d.OriginalPrice,
		"discount":       d.Discount,
		"category":       string(d.Category),
		"condition":      string(d.Condition),
		"score":          d.Score,
		"verdict":        d.Verdict,
		"reasons":        reasons,
		"posted_at":      d.PostedAt,
	}

	var inserted bool
	err := s.pool.QueryRow(ctx, queryUpsertFeaturedDeal, args).Scan(
		&d.ID, &d.FirstSeenAt, &d.UpdatedAt, &d.NotifiedAt, &inserted,
	)
	if err != nil {
		return false, fmt.Errorf("upserting featured deal %s/%s: %w", d.Source, d.SourceID, err)
	}
	return inserted, nil
}

// GetFeaturedDeal retrieves a featured deal by its UUID.
func (s *PostgresStore) GetFeaturedDeal(ctx context.Context, id string) (*domain.FeaturedDeal, error) {
	d := &domain.FeaturedDeal{}
	err := scanFeatured(s.pool.QueryRow(ctx, queryGetFeaturedDeal, id), d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting featured deal %s: %w", id, err)
	}
	return d, nil
}

// ListFeaturedDeals queries featured deals with optional filters, returning
// one page and the total match count.
func (s *PostgresStore) ListFeaturedDeals(
	ctx context.Context,
	q *FeaturedQuery,
) ([]domain.FeaturedDeal, int, error) {
	if q == nil {
		q = &FeaturedQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting featured deals: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args)
	if err != nil {
		return nil, 0, fmt.Errorf("querying featured deals: %w", err)
	}
	deals, err := collectFeatured(rows)
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// ListUnnotifiedDeals returns deals at or above minScore with no alert sent.
func (s *PostgresStore) ListUnnotifiedDeals(ctx context.Context, minScore, limit int) ([]domain.FeaturedDeal, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.pool.Query(ctx, queryListUnnotifiedDeals, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("querying unnotified deals: %w", err)
	}
	return collectFeatured(rows)
}

// MarkNotified stamps the given deals as alerted. Already stamped deals keep
// their original time.
func (s *PostgresStore) MarkNotified(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, queryMarkNotified, ids); err != nil {
		return fmt.Errorf("marking deals notified: %w", err)
	}
	return nil
}

// PruneFeaturedDeals deletes deals last refreshed before now - olderThan.
func (s *PostgresStore) PruneFeaturedDeals(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPruneFeaturedDeals, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning featured deals: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func collectFeatured(rows pgx.Rows) ([]domain.FeaturedDeal, error) {
	defer rows.Close()

	deals := []domain.FeaturedDeal{}
	for rows.Next() {
		var d domain.FeaturedDeal
		if err := scanFeatured(rows, &d); err != nil {
			return nil, fmt.Errorf("scanning featured deal: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating featured deals: %w", err)
	}
	return deals, nil
}

// scanFeatured scans one row selected with featuredColumns.
func scanFeatured(row pgx.Row, d *domain.FeaturedDeal) error {
	var src, category, condition string
	if err := row.Scan(
		&d.ID, &src, &d.SourceID, &d.Title, &d.SourceURL, &d.ImageURL,
		&d.CurrentPrice, &d.OriginalPrice, &d.Discount, &category, &condition,
		&d.Score, &d.Verdict, &d.Reasons, &d.PostedAt, &d.FirstSeenAt, &d.UpdatedAt, &d.NotifiedAt,
	); err != nil {
		return err
	}
	d.Source = domain.Source(src)
	d.Category = domain.Category(category)
	d.Condition = domain.Condition(condition)
	return nil
}
