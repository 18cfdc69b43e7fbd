package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// Archiver receives the raw bulk payload before it is decoded.
type Archiver interface {
	Archive(ctx context.Context, entry BulkDataEntry, payload []byte) error
}

// Client fetches the sets list and the bulk card feed.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	archiver   Archiver
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithArchiver hands every downloaded bulk payload to a.
func WithArchiver(a Archiver) Option {
	return func(c *Client) { c.archiver = a }
}

// NewClient creates a catalog client.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 300
	}
	if cfg.BulkType == "" {
		cfg.BulkType = "default_cards"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSets returns every set, following pagination.
func (c *Client) FetchSets(ctx context.Context) ([]SetRecord, error) {
	var sets []SetRecord
	next := c.cfg.BaseURL + "/sets"
	for next != "" {
		var page listResponse[SetRecord]
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		sets = append(sets, page.Data...)
		next = ""
		if page.HasMore {
			next = page.NextPage
		}
	}

	c.logger.Info("Fetched sets", zap.Int("count", len(sets)))
	return sets, nil
}

// FetchCatalog resolves the configured bulk entry and downloads the card feed.
func (c *Client) FetchCatalog(ctx context.Context) ([]CardRecord, error) {
	entry, err := c.resolveBulkEntry(ctx)
	if err != nil {
		return nil, err
	}

	log := c.logger.With(zap.String("bulk_type", entry.Type), zap.String("updated_at", entry.UpdatedAt))
	log.Info("Downloading bulk catalog", zap.String("uri", entry.DownloadURI), zap.Int64("size", entry.Size))

	payload, err := c.get(ctx, entry.DownloadURI)
	if err != nil {
		return nil, err
	}

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, *entry, payload); err != nil {
			log.Warn("Failed to archive bulk catalog", zap.Error(err))
		}
	}

	cards, err := DecodeCards(bytes.NewReader(payload))
	if err != nil {
		return nil, &reconcile.FetchError{URL: entry.DownloadURI, Reason: "malformed card payload", Err: err}
	}

	log.Info("Fetched bulk catalog", zap.Int("records", len(cards)))
	return cards, nil
}

// DecodeCards parses a bulk card payload.
func DecodeCards(r io.Reader) ([]CardRecord, error) {
	var cards []CardRecord
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) resolveBulkEntry(ctx context.Context) (*BulkDataEntry, error) {
	url := c.cfg.BaseURL + "/bulk-data"
	var index listResponse[BulkDataEntry]
	if err := c.getJSON(ctx, url, &index); err != nil {
		return nil, err
	}

	var matches []BulkDataEntry
	for _, entry := range index.Data {
		if entry.Type == c.cfg.BulkType {
			matches = append(matches, entry)
		}
	}
	if len(matches) != 1 {
		return nil, &reconcile.FetchError{
			URL:    url,
			Reason: fmt.Sprintf("expected exactly one %q bulk entry, found %d", c.cfg.BulkType, len(matches)),
		}
	}
	if matches[0].DownloadURI == "" {
		return nil, &reconcile.FetchError{URL: url, Reason: fmt.Sprintf("%q bulk entry has no download_uri", c.cfg.BulkType)}
	}
	return &matches[0], nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &reconcile.FetchError{URL: url, Reason: "malformed payload", Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &reconcile.FetchError{URL: url, Reason: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &reconcile.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &reconcile.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &reconcile.FetchError{URL: url, Reason: "failed to read body", Err: err}
	}
	return body, nil
}
