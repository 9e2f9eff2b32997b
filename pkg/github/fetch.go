package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickprogramme/segscript/internal/fetch"
)

// DefaultBaseURL est la racine de l'API GitHub.
const DefaultBaseURL = "https://api.github.com"

// Client interroge l'API des releases GitHub.
type Client struct {
	BaseURL string
	Fetch   *fetch.Client
}

// NewClient retourne un client vers l'API publique.
func NewClient() *Client {
	return &Client{BaseURL: DefaultBaseURL, Fetch: fetch.New(0, 0)}
}

// FetchLatestRelease interroge l'API GitHub pour la dernière release d'un dépôt
// et décode la réponse dans dst.
func (c *Client) FetchLatestRelease(ctx context.Context, owner, repo string, dst any) error {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", base, owner, repo)
	f := c.Fetch
	if f == nil {
		f = fetch.New(0, 0)
	}
	if err := f.JSONInto(ctx, url, dst); err != nil {
		return fmt.Errorf("release GitHub %s/%s : %w", owner, repo, err)
	}
	return nil
}
