// Package fantacalcio scrapes player statistics pages from the
// fantacalcio website: the per-season player listing, the per-match-day
// time series of a player and the season summary aggregates.
package fantacalcio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"fantassist-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fantassist.scrapers.fantacalcio")

const DefaultBaseUrl = "https://www.fantacalcio.it"

const listingPath = "/quotazioni-fantacalcio"

type Client struct {
	BaseUrl string
	Http    *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to 15 seconds
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 15
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "fantassist.scrapers.fantacalcio.http")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
}

// fetchDocument performs a single GET and parses the body. There is no
// retry at this layer, a transient failure surfaces as a FetchError for
// the caller to handle.
func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if res.IsError() {
		return nil, &FetchError{
			URL: url,
			Err: fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}
