package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/app"
	"github.com/patrickprogramme/segscript/internal/captions"
	"github.com/patrickprogramme/segscript/internal/config"
	"github.com/patrickprogramme/segscript/internal/fetch"
	"github.com/patrickprogramme/segscript/internal/transcript"
	"github.com/patrickprogramme/segscript/internal/ui"
	"github.com/patrickprogramme/segscript/internal/yt"
)

// lazyAcquirer n'initialise yt-dlp qu'à la première acquisition : les commandes
// qui ne lisent que le cache fonctionnent sans yt-dlp installé.
type lazyAcquirer struct {
	cfg    *config.Config
	ui     ui.Interface
	logger *zap.Logger

	once sync.Once
	acq  *captions.Acquirer
	err  error
}

func newLazyAcquirer(cfg *config.Config, u ui.Interface, logger *zap.Logger) *lazyAcquirer {
	return &lazyAcquirer{cfg: cfg, ui: u, logger: logger}
}

func (l *lazyAcquirer) init(ctx context.Context) {
	dl, version, err := yt.InitYtDlp(ctx, l.cfg.YtDlp)
	if err != nil {
		l.err = err
		return
	}
	l.logger.Debug("yt-dlp prêt", zap.String("path", dl.Path), zap.String("version", version))

	if l.cfg.YtDlp.AutoUpdateCheck {
		if _, err := app.YtDlpUpdateCheck(ctx, l.ui, nil, version); err != nil {
			l.logger.Warn("vérification de mise à jour yt-dlp", zap.Error(err))
		}
	}

	l.acq = captions.NewAcquirer(
		dl,
		fetch.New(l.cfg.FetchTimeout, l.cfg.MaxCaptionBytes),
		captions.Options{
			Languages:      l.cfg.Languages,
			PreferManual:   l.cfg.PreferManualSubs,
			ExtractTimeout: l.cfg.ExtractTimeout,
		},
		l.logger,
	)
}

func (l *lazyAcquirer) Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	l.once.Do(func() { l.init(ctx) })
	if l.err != nil {
		return nil, &captions.AcquisitionError{ID: videoID, Reason: captions.ReasonTool, Err: l.err}
	}
	return l.acq.Acquire(ctx, videoID)
}
