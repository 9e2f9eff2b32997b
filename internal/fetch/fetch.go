// Package fetch fournit des utilitaires légers et testables pour télécharger
// des ressources HTTP en mémoire (pistes de sous-titres, API GitHub).
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "segscript/1.0"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// Client télécharge des ressources avec un délai et une taille maximale.
// La valeur zéro est utilisable : les champs vides prennent les valeurs par défaut.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
}

// New retourne un Client avec les limites données (<=0 => valeur par défaut).
func New(timeout time.Duration, maxBytes int64) *Client {
	return &Client{Timeout: timeout, MaxBytes: maxBytes}
}

func (c *Client) limits() (time.Duration, int64) {
	timeout, maxBytes := c.Timeout, c.MaxBytes
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return timeout, maxBytes
}

// Bytes télécharge rawURL et retourne le corps de la réponse.
// Tout est lu en mémoire : réservé aux petits documents.
func (c *Client) Bytes(ctx context.Context, rawURL string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout, maxBytes := c.limits()

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("fetch: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: %w: %s", ErrStatus, resp.Status)
	}

	// Content-Length connu et trop grand -> échouer vite
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("fetch: %w: content-length %d exceeds limit %d", ErrTooLarge, resp.ContentLength, maxBytes)
	}

	r := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch: %w (>%d bytes)", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// JSONInto télécharge rawURL et décode le JSON dans dst (dst doit être un pointeur).
func (c *Client) JSONInto(ctx context.Context, rawURL string, dst any) error {
	data, err := c.Bytes(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("fetch json: decode: %w", err)
	}
	return nil
}

// FetchJSON générique : fetch + unmarshal dans une valeur typée.
func FetchJSON[T any](ctx context.Context, c *Client, rawURL string) (T, error) {
	var v T
	if err := c.JSONInto(ctx, rawURL, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
