package yt

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/segscript/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp initialise le client, vérifie le binaire et récupère la version.
func InitYtDlp(ctx context.Context, cfg config.YtDlpConfig) (*YtDlp, string, error) {
	dl := NewYtDlp(cfg.Name, cfg.ResolvedPath, NewOptions(cfg.ShowWarnings))

	if err := dl.CheckBinary(); err != nil {
		return nil, "", err
	}

	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version yt-dlp : %w", err)
	}

	return dl, version, nil
}
