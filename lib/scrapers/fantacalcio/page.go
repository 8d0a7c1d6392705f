package fantacalcio

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// playerPage is the fetch-once document holder shared by the extraction
// methods of one scraper instance. The page is fetched lazily on the
// first access and reused afterwards, so pulling several fields off the
// same profile page costs a single request.
type playerPage struct {
	client *Client
	url    string
	doc    *goquery.Document
}

func (p *playerPage) document(ctx context.Context) (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := p.client.fetchDocument(ctx, p.url)
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return p.doc, nil
}
