package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbrief/internal/infra/scraper"
)

func newTestScraper() *scraper.OGImageScraper {
	return scraper.NewOGImageScraper(&http.Client{Timeout: 5 * time.Second})
}

func TestOGImageScraper_FetchOGImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Story">
<meta property="og:image" content="https://cdn.example.com/story.jpg">
</head><body>article</body></html>`))
	}))
	defer server.Close()

	img, err := newTestScraper().FetchOGImage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/story.jpg", img)
}

func TestOGImageScraper_TwitterImageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
<meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
</head><body></body></html>`))
	}))
	defer server.Close()

	img, err := newTestScraper().FetchOGImage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tw.jpg", img)
}

func TestOGImageScraper_RelativeImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
<meta property="og:image" content="/images/story.jpg">
</head><body></body></html>`))
	}))
	defer server.Close()

	img, err := newTestScraper().FetchOGImage(context.Background(), server.URL+"/news/story")

	require.NoError(t, err)
	assert.Equal(t, server.URL+"/images/story.jpg", img)
}

func TestOGImageScraper_NoImageTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head><title>plain</title></head><body></body></html>`))
	}))
	defer server.Close()

	_, err := newTestScraper().FetchOGImage(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestOGImageScraper_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestScraper().FetchOGImage(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestOGImageScraper_RejectsNonHTTPScheme(t *testing.T) {
	_, err := newTestScraper().FetchOGImage(context.Background(), "ftp://example.com/page")

	assert.Error(t, err)
}
