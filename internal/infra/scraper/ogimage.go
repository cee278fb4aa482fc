// Package scraper provides HTML scraping helpers for enriching news items.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxBodySize = 2 * 1024 * 1024 // 2MB, og tags live in <head>
)

// OGImageScraper extracts the Open Graph image from an article page.
// It is used to give RSS-sourced items a real thumbnail instead of the
// category default.
type OGImageScraper struct {
	client *http.Client
}

// NewOGImageScraper creates a scraper with the given HTTP client.
// The client should carry appropriate timeouts.
func NewOGImageScraper(client *http.Client) *OGImageScraper {
	return &OGImageScraper{client: client}
}

// FetchOGImage downloads pageURL and returns its og:image URL.
// A page without the tag yields an error; callers treat that as "no image".
func (s *OGImageScraper) FetchOGImage(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %s", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	img, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || strings.TrimSpace(img) == "" {
		// twitter:image is the common fallback on pages without og tags
		img, ok = doc.Find(`meta[name="twitter:image"]`).Attr("content")
		if !ok || strings.TrimSpace(img) == "" {
			return "", errors.New("no og:image tag found")
		}
	}

	img = strings.TrimSpace(img)
	imgURL, err := url.Parse(img)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	if !imgURL.IsAbs() {
		// Relative image URLs resolve against the page
		return parsed.ResolveReference(imgURL).String(), nil
	}
	return img, nil
}
