package marketwatch

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Metric names one of the scraped sections of an index page. The value is
// the site's own class token for that section.
type Metric string

const (
	MetricPerformance Metric = "performance"
	MetricGainers     Metric = "ByIndexGainers"
	MetricDecliners   Metric = "ByIndexDecliners"
)

var indexUrls = map[string]string{
	"SP500": "https://www.marketwatch.com/investing/index/spx",
}

func SupportedIndexes() []string {
	names := make([]string, 0, len(indexUrls))
	for name := range indexUrls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bundle is the combined scrape result for one index page. All three
// sections come from the same fetch, a bundle is never partially populated.
type Bundle struct {
	Performance PeriodMap
	Gainers     Table
	Decliners   Table
}

type ClientOptions struct {
	// defaults to 30 seconds
	Timeout time.Duration
	// extra headers sent with every request
	Headers map[string]string
	// overrides the built-in index page registry, used by tests
	Urls map[string]string
}

type Client struct {
	http *resty.Client
	urls map[string]string
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	urls := opts.Urls
	if urls == nil {
		urls = indexUrls
	}

	return &Client{
		http: client,
		urls: urls,
	}
}

// Scrape fetches the page for the given index and parses all three metric
// sections. The first section that fails to locate or parse aborts the whole
// call, a layout change on one section means none of them can be trusted.
func (c *Client) Scrape(ctx context.Context, index string) (Bundle, error) {
	ctx, span := tracer.Start(ctx, "client:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("index", index))

	link, ok := c.urls[strings.ToUpper(index)]
	if !ok {
		err := &UnsupportedIndexError{Index: index}
		span.SetStatus(codes.Error, "unsupported index")
		return Bundle{}, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Bundle{}, &FetchError{Url: link, Cause: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return Bundle{}, &FetchError{Url: link, Status: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Bundle{}, err
	}

	bundle, err := scrapeDocument(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scrape document")
		return Bundle{}, err
	}
	return bundle, nil
}

func scrapeDocument(ctx context.Context, doc *goquery.Document) (Bundle, error) {
	ctx, span := tracer.Start(ctx, "scrapeDocument")
	defer span.End()

	// locate all three sections before parsing anything, a single miss
	// invalidates the whole page
	containers := map[Metric]*goquery.Selection{}
	for _, metric := range []Metric{MetricPerformance, MetricGainers, MetricDecliners} {
		container, err := locateMetric(doc, metric)
		if err != nil {
			span.SetStatus(codes.Error, "failed to locate metric")
			return Bundle{}, err
		}
		containers[metric] = container
	}

	var bundle Bundle
	var err error

	bundle.Performance, err = extractPeriods(MetricPerformance, containers[MetricPerformance])
	if err != nil {
		return Bundle{}, err
	}
	bundle.Gainers, err = extractTable(MetricGainers, containers[MetricGainers])
	if err != nil {
		return Bundle{}, err
	}
	bundle.Decliners, err = extractTable(MetricDecliners, containers[MetricDecliners])
	if err != nil {
		return Bundle{}, err
	}

	return bundle, nil
}
