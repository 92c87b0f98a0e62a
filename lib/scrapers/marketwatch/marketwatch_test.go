package marketwatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketview-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const indexPage = `<!DOCTYPE html>
<html>
<body>
<div class="region region--primary">
<div class="element element--table performance">
<header class="header header--secondary">Performance</header>
<table>
<tbody>
<tr>
<td>5 Day</td>
<td>
+1.20%
</td>
</tr>
<tr>
<td>1 Month</td>
<td>
-0.34%
</td>
</tr>
</tbody>
</table>
</div>
<div class="element element--table ByIndexGainers table--primary">
<header class="header header--secondary">Top Gainers</header>
<table>
<thead>
<tr>
<th>Symbol</th>
<th>Company</th>
<th>Chg %</th>
</tr>
</thead>
<tbody>
<tr>
<td>NVDA</td>
<td>NVIDIA Corp.</td>
<td>+3.41%</td>
</tr>
<tr>
<td>AMD</td>
<td>Advanced Micro Devices Inc.</td>
<td>+2.87%</td>
</tr>
</tbody>
</table>
</div>
<div class="element element--table ByIndexDecliners table--primary">
<header class="header header--secondary">Top Decliners</header>
<table>
<thead>
<tr>
<th>Symbol</th>
<th>Company</th>
<th>Chg %</th>
</tr>
</thead>
<tbody>
<tr>
<td>INTC</td>
<td>Intel Corp.</td>
<td>-2.15%</td>
</tr>
</tbody>
</table>
</div>
</div>
</body>
</html>`

func documentFromHtml(t testing.TB, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestScrapeDocument(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/marketwatch")
	defer cleanup()

	doc := documentFromHtml(t, indexPage)

	bundle, err := scrapeDocument(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, bundle.Performance.Len())
	fiveDay, ok := bundle.Performance.Get("5 Day")
	require.True(t, ok)
	require.Equal(t, "+1.20%", fiveDay)

	require.Equal(t, []string{"Symbol", "Company", "Chg %"}, bundle.Gainers.Columns)
	require.Len(t, bundle.Gainers.Rows, 2)
	require.Len(t, bundle.Decliners.Rows, 1)
	require.Equal(t, "INTC", bundle.Decliners.Rows[0][0])
}

func TestScrapeDocumentAlteredClass(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/marketwatch")
	defer cleanup()

	// the gainers block no longer carries the expected class token
	page := strings.Replace(indexPage, "ByIndexGainers", "ByIndexMovers", 1)
	doc := documentFromHtml(t, page)

	_, err := scrapeDocument(context.Background(), doc)
	var mismatch *StructureMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, MetricGainers, mismatch.Metric)
}

func TestLocateMetricAmbiguous(t *testing.T) {
	page := strings.Replace(
		indexPage,
		`<div class="region region--primary">`,
		`<div class="region region--primary">
<div class="element element--table ByIndexDecliners">
<table><tr><td>stray</td><td>row</td></tr></table>
</div>`,
		1,
	)
	doc := documentFromHtml(t, page)

	_, err := locateMetric(doc, MetricDecliners)
	var mismatch *StructureMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, MetricDecliners, mismatch.Metric)
}

func TestScrapeUnsupportedIndex(t *testing.T) {
	client := NewClient(ClientOptions{})

	_, err := client.Scrape(context.Background(), "NIKKEI225")
	var unsupported *UnsupportedIndexError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "NIKKEI225", unsupported.Index)
}

func TestScrapeEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/marketwatch")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		Urls: map[string]string{"SP500": server.URL},
	})

	bundle, err := client.Scrape(context.Background(), "sp500")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, bundle.Performance.Len())
	require.Len(t, bundle.Gainers.Rows, 2)
	require.Len(t, bundle.Decliners.Rows, 1)
}

func TestScrapeFetchError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/marketwatch")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		Urls: map[string]string{"SP500": server.URL},
	})

	_, err := client.Scrape(context.Background(), "SP500")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
}
