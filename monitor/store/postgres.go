// Package store implements the reference-price lookup against Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

type Config struct {
	Host     string        `envconfig:"HOST" split_words:"true" default:"localhost"`
	Port     int           `envconfig:"PORT" split_words:"true" default:"5432"`
	Name     string        `envconfig:"NAME" split_words:"true" required:"true"`
	User     string        `envconfig:"USER" split_words:"true" required:"true"`
	Password string        `envconfig:"PASSWORD" split_words:"true"`
	Timeout  time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type productPrice struct {
	bun.BaseModel `bun:"table:product.product_prices"`

	ProductCode string    `bun:"product_cd"`
	Price       float64   `bun:"price"`
	UpdatedAt   time.Time `bun:"updated_at"`
}

// PostgresStore reads reference prices from product.product_prices. It never
// writes.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(cfg Config) *PostgresStore {
	connector := pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithInsecure(true),
		pgdriver.WithTimeout(cfg.Timeout),
	)

	sqldb := sql.OpenDB(connector)
	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}
}

// NewWithDB wraps an existing bun handle. Used by tests and callers that
// manage the connection themselves.
func NewWithDB(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Lookup(ctx context.Context, productCode string) (contractx.PriceRecord, error) {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return contractx.PriceRecord{}, fmt.Errorf("%w: product code is required", contractx.ErrDataSource)
	}

	var row productPrice
	err := s.db.NewSelect().
		Model(&row).
		Where("product_cd = ?", code).
		Order("updated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contractx.PriceRecord{}, fmt.Errorf("%w: product_code=%s", contractx.ErrNotFound, code)
		}
		return contractx.PriceRecord{}, fmt.Errorf("%w: %v", contractx.ErrDataSource, err)
	}

	return contractx.PriceRecord{
		ProductCode: row.ProductCode,
		Price:       row.Price,
		UpdatedAt:   row.UpdatedAt.Format("2006-01-02"),
	}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
