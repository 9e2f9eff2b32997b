package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/segscript/pkg/github"
)

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// GetLatestYtDlpRelease récupère la dernière release de yt-dlp sur GitHub.
func GetLatestYtDlpRelease(ctx context.Context, gh *github.Client) (*YtDlpReleaseInfo, error) {
	if gh == nil {
		gh = github.NewClient()
	}

	var raw rawRelease
	if err := gh.FetchLatestRelease(ctx, "yt-dlp", "yt-dlp", &raw); err != nil {
		return nil, err
	}

	info := &YtDlpReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		HTMLURL:     raw.HTMLURL,
	}

	for _, a := range raw.Assets {
		switch a.Name {
		case "yt-dlp.exe":
			info.WindowsRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case "yt-dlp":
			info.LinuxRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.TagName == "" {
		return nil, fmt.Errorf("release yt-dlp sans tag")
	}
	return info, nil
}
