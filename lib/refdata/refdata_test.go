package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorePutAndIndex(t *testing.T) {
	store, err := OpenStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	err = store.Put(ctx, "SP500", []Stock{
		{Ticker: "MSFT", Name: "Microsoft Corp.", Sector: "Information Technology"},
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
		{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financials"},
	})
	if err != nil {
		t.Fatal(err)
	}

	stocks, err := store.Index("SP500").Stocks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, stocks, 3)
	require.Equal(t, "AAPL", stocks[0].Ticker)

	other, err := store.Index("DJIA").Stocks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, other)
}

func TestStorePutReplaces(t *testing.T) {
	store, err := OpenStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	err = store.Put(ctx, "SP500", []Stock{
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = store.Put(ctx, "SP500", []Stock{
		{Ticker: "XOM", Name: "Exxon Mobil Corp.", Sector: "Energy"},
	})
	if err != nil {
		t.Fatal(err)
	}

	stocks, err := store.Index("SP500").Stocks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, stocks, 1)
	require.Equal(t, "XOM", stocks[0].Ticker)
}

func TestStaticProviderCopies(t *testing.T) {
	provider := Static{
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
	}

	stocks, err := provider.Stocks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	stocks[0].Ticker = "mutated"

	again, err := provider.Stocks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "AAPL", again[0].Ticker)
}
