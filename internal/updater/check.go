package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickprogramme/segscript/pkg/github"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string            // version récupérée localement
	LatestRelease  *YtDlpReleaseInfo // info complète de la release distante
	IsUpToDate     bool              // true si CurrentVersion == LatestRelease.TagName
}

// CheckYtDlpUpdate compare la version locale à la dernière release GitHub.
// gh peut être nil (API publique).
func CheckYtDlpUpdate(ctx context.Context, gh *github.Client, localVer string) (*UpdateCheck, error) {
	latest, err := GetLatestYtDlpRelease(ctx, gh)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}

	localVer = strings.TrimSpace(localVer)
	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     localVer == latest.TagName,
	}, nil
}

// GetUpdateLink retourne le lien de téléchargement pour le système donné (runtime.GOOS),
// ou la page de la release si l'asset est absent.
func (u UpdateCheck) GetUpdateLink(system string) string {
	link := u.LatestRelease.LinuxRelease.BrowserDownloadURL
	if system == "windows" {
		link = u.LatestRelease.WindowsRelease.BrowserDownloadURL
	}
	if link == "" {
		return u.LatestRelease.HTMLURL
	}
	return link
}
