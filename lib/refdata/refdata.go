// Package refdata holds the static reference table of the stocks that make
// up each index: ticker symbol, company name and sector. Scraped metrics are
// combined with this table downstream, the scraper itself never reads it.
package refdata

import (
	"context"
	"database/sql"
	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Stock struct {
	Ticker string
	Name   string
	Sector string
}

// Provider hands out the reference table for a single index. Implementations
// are resolved once at startup, callers never look providers up by name at
// runtime.
type Provider interface {
	Stocks(ctx context.Context) ([]Stock, error)
}

// Static is a fixed in-memory reference table, mostly useful in tests.
type Static []Stock

func (s Static) Stocks(ctx context.Context) ([]Stock, error) {
	out := make([]Stock, len(s))
	copy(out, s)
	return out, nil
}

type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces the reference table for an index.
func (s *Store) Put(ctx context.Context, index string, stocks []Stock) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM stocks WHERE index_name = ?`, index)
	if err != nil {
		return err
	}
	for _, stock := range stocks {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO stocks (index_name, ticker, name, sector) VALUES (?, ?, ?, ?)`,
			index, stock.Ticker, stock.Name, stock.Sector,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Index returns a Provider bound to one index's rows.
func (s *Store) Index(name string) Provider {
	return indexProvider{store: s, index: name}
}

type indexProvider struct {
	store *Store
	index string
}

func (p indexProvider) Stocks(ctx context.Context) ([]Stock, error) {
	rows, err := p.store.db.QueryContext(
		ctx,
		`SELECT ticker, name, sector FROM stocks WHERE index_name = ? ORDER BY ticker`,
		p.index,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		var stock Stock
		err = rows.Scan(&stock.Ticker, &stock.Name, &stock.Sector)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}
