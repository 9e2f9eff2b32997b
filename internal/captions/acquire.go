package captions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/transcript"
	"github.com/patrickprogramme/segscript/internal/yt"
	"github.com/patrickprogramme/segscript/pkg/model"
)

// Reason classe la cause d'un échec d'acquisition.
type Reason string

const (
	ReasonInvalidID  Reason = "invalid_id"
	ReasonNoCaptions Reason = "no_captions"
	ReasonTool       Reason = "tool"
	ReasonDownload   Reason = "download"
	ReasonDecode     Reason = "decode"
)

// AcquisitionError décrit un échec d'acquisition pour une vidéo.
type AcquisitionError struct {
	ID     string
	Reason Reason
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("acquisition %s: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("acquisition %s: %s: %v", e.ID, e.Reason, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// ReasonOf retourne la cause d'un échec, "" si err n'est pas une AcquisitionError.
func ReasonOf(err error) Reason {
	var ae *AcquisitionError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ""
}

// Downloader télécharge une piste (implémenté par *fetch.Client).
type Downloader interface {
	Bytes(ctx context.Context, rawURL string) ([]byte, error)
}

// Options règle le choix de piste et la durée maximale de l'extraction.
type Options struct {
	Languages      []string
	PreferManual   bool
	ExtractTimeout time.Duration
}

// Acquirer récupère une transcription auprès de YouTube via yt-dlp.
type Acquirer struct {
	tool   yt.Interface
	dl     Downloader
	opts   Options
	logger *zap.Logger
}

// NewAcquirer construit un Acquirer. logger peut être nil.
func NewAcquirer(tool yt.Interface, dl Downloader, opts Options, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"en"}
	}
	return &Acquirer{tool: tool, dl: dl, opts: opts, logger: logger}
}

// Acquire récupère les métadonnées de la vidéo, choisit une piste, la télécharge
// et la convertit en Transcript. Aucune écriture sur disque.
func (a *Acquirer) Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	fail := func(reason Reason, err error) (*transcript.Transcript, error) {
		return nil, &AcquisitionError{ID: videoID, Reason: reason, Err: err}
	}

	if !yt.ValidVideoID(videoID) {
		return fail(ReasonInvalidID, fmt.Errorf("identifiant invalide %q", videoID))
	}

	meta, err := a.extractMeta(ctx, videoID)
	if err != nil {
		return fail(ReasonTool, err)
	}

	track, err := SelectTrack(meta, a.opts.Languages, a.opts.PreferManual)
	if err != nil {
		return fail(ReasonNoCaptions, err)
	}
	a.logger.Debug("piste sélectionnée",
		zap.String("video_id", videoID),
		zap.String("lang", track.Lang),
		zap.Stringer("source", track.Source),
	)

	data, err := a.dl.Bytes(ctx, track.URL)
	if err != nil {
		return fail(ReasonDownload, err)
	}

	fragments, err := DecodeFragments(data)
	if err != nil {
		return fail(ReasonDecode, err)
	}

	return transcript.New(
		videoID,
		track.DisplayName(),
		track.LangCode(),
		track.Source == model.SubSourceAutomatic,
		fragments,
	), nil
}

func (a *Acquirer) extractMeta(ctx context.Context, videoID string) (*model.Meta, error) {
	if a.opts.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.ExtractTimeout)
		defer cancel()
	}

	raw, err := a.tool.ExtractRaw(ctx, yt.WatchURL(videoID))
	if err != nil {
		return nil, err
	}
	for _, w := range raw.Warnings {
		a.logger.Warn("yt-dlp", zap.String("video_id", videoID), zap.String("message", w))
	}

	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("métadonnées extraites",
		zap.Stringer("meta", meta),
		zap.Bool("manual_subs", meta.HasManualSubs()),
		zap.Bool("auto_subs", meta.HasAutoSubs()),
		zap.Duration("elapsed", raw.Elapsed),
	)
	return meta, nil
}
