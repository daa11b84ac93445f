// Package channelcheck verifies that a registered influencer channel URL
// resolves to a real, public page on the claimed platform.
package channelcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type PageInfo struct {
	Title      string `json:"title"`
	OGTitle    string `json:"og_title,omitempty"`
	OGSiteName string `json:"og_site_name,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// DisplayName returns the best available name for the page.
func (p *PageInfo) DisplayName() string {
	if p.OGTitle != "" {
		return p.OGTitle
	}
	return p.Title
}

type Checker struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewChecker(timeoutMS, maxRetries int, log *zap.Logger) *Checker {
	return &Checker{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// Fetch loads the channel page and extracts its identifying metadata,
// retrying transient failures with a linear backoff.
func (c *Checker) Fetch(ctx context.Context, url string) (*PageInfo, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
				// The page does not exist; retrying will not help.
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	info := ParseDocument(doc)
	info.FetchedAt = time.Now()
	return info, nil
}

// ParseDocument extracts the page title and Open Graph metadata.
func ParseDocument(doc *goquery.Document) *PageInfo {
	info := &PageInfo{}

	info.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(`meta[property="og:title"]`).Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists && info.OGTitle == "" {
			info.OGTitle = strings.TrimSpace(content)
		}
	})
	doc.Find(`meta[property="og:site_name"]`).Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists && info.OGSiteName == "" {
			info.OGSiteName = strings.TrimSpace(content)
		}
	})

	return info
}
