package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/captions"
	"github.com/patrickprogramme/segscript/internal/store"
	"github.com/patrickprogramme/segscript/internal/timecode"
	"github.com/patrickprogramme/segscript/internal/transcript"
	"github.com/patrickprogramme/segscript/internal/yt"
)

// Messages renvoyés par Query dans le canal de retour normal.
const (
	MsgFetchFailed  = "Error: Failed to fetch transcript!"
	MsgInvalidRange = "Error: Invalid time range format. Use 'start_time;end_time' (e.g., '10:00;20:00')"
)

// Status est le résultat binaire d'une acquisition.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "failed"
}

// Acquirer récupère une transcription auprès de la source (implémenté par *captions.Acquirer).
type Acquirer interface {
	Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error)
}

// Store persiste les transcriptions (implémenté par *store.FileStore).
type Store interface {
	Exists(videoID string) (bool, error)
	Save(t *transcript.Transcript) error
	Load(videoID string) (*transcript.Transcript, error)
	Delete(videoID string) error
	List() ([]string, error)
}

// Service assure l'acquisition, le cache et les requêtes par plage de temps.
// Une seule acquisition au plus par appel, sans nouvelle tentative.
type Service struct {
	store  Store
	acq    Acquirer
	logger *zap.Logger
}

// NewService construit le service. logger peut être nil.
func NewService(st Store, acq Acquirer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, acq: acq, logger: logger}
}

// normalizeID accepte un identifiant nu ou une URL YouTube.
func normalizeID(s string) (string, error) {
	id, err := yt.ExtractVideoID(s)
	if err != nil {
		return "", &captions.AcquisitionError{ID: s, Reason: captions.ReasonInvalidID, Err: err}
	}
	return id, nil
}

// FetchAndCache acquiert la transcription et l'enregistre en écrasant la version
// en cache. Les causes d'échec sont journalisées, seul le statut est renvoyé.
func (s *Service) FetchAndCache(ctx context.Context, videoID string) Status {
	if _, err := s.FetchAndCacheErr(ctx, videoID); err != nil {
		return StatusFailed
	}
	return StatusOK
}

// FetchAndCacheErr fait la même chose que FetchAndCache mais renvoie la
// transcription enregistrée ou l'erreur détaillée (*captions.AcquisitionError
// pour un échec d'acquisition).
func (s *Service) FetchAndCacheErr(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	id, err := normalizeID(videoID)
	if err != nil {
		s.logFailure(videoID, err)
		return nil, err
	}

	t, err := s.acq.Acquire(ctx, id)
	if err != nil {
		s.logFailure(id, err)
		return nil, err
	}

	if err := s.store.Save(t); err != nil {
		s.logger.Error("échec de l'enregistrement", zap.String("video_id", id), zap.Error(err))
		return nil, fmt.Errorf("enregistrement de %s: %w", id, err)
	}
	s.logger.Info("transcript enregistré",
		zap.String("video_id", id),
		zap.String("language_code", t.LanguageCode),
		zap.Bool("is_generated", t.IsGenerated),
		zap.Int("fragments", len(t.Fragments)),
	)
	return t, nil
}

func (s *Service) logFailure(videoID string, err error) {
	s.logger.Warn("échec de l'acquisition",
		zap.String("video_id", videoID),
		zap.String("reason", string(captions.ReasonOf(err))),
		zap.Error(err),
	)
}

// EnsureAvailable garantit qu'un enregistrement existe pour videoID : un
// enregistrement présent est utilisé tel quel, sinon une acquisition est lancée.
func (s *Service) EnsureAvailable(ctx context.Context, videoID string) error {
	_, err := s.ensure(ctx, videoID)
	return err
}

func (s *Service) ensure(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	id, err := normalizeID(videoID)
	if err != nil {
		s.logFailure(videoID, err)
		return nil, err
	}

	t, err := s.store.Load(id)
	if err == nil {
		s.logger.Debug("transcript trouvé en cache", zap.String("video_id", id))
		return t, nil
	}
	if !errors.Is(err, store.ErrNotCached) {
		// enregistrement illisible : pas de nouvelle acquisition implicite
		s.logger.Error("lecture du cache impossible", zap.String("video_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("transcript absent du cache, acquisition", zap.String("video_id", id))
	return s.FetchAndCacheErr(ctx, id)
}

// Query renvoie le texte des fragments qui chevauchent rangeStr ("début;fin"),
// ou le texte complet si rangeStr est vide. Les erreurs sont renvoyées sous
// forme de message lisible, jamais propagées.
func (s *Service) Query(ctx context.Context, videoID, rangeStr string) string {
	t, err := s.ensure(ctx, videoID)
	if err != nil {
		return MsgFetchFailed
	}
	if rangeStr == "" {
		return t.Query(nil)
	}

	w, err := timecode.ParseRange(rangeStr)
	if err != nil {
		s.logger.Debug("plage invalide", zap.String("range", rangeStr), zap.Error(err))
		return MsgInvalidRange
	}
	return t.Query(&w)
}

// LoadFullText lit le texte complet en cache sans jamais déclencher d'acquisition.
func (s *Service) LoadFullText(videoID string) (string, bool) {
	t, err := s.Load(videoID)
	if err != nil {
		if !errors.Is(err, store.ErrNotCached) {
			s.logger.Warn("lecture du cache impossible", zap.String("video_id", videoID), zap.Error(err))
		}
		return "", false
	}
	return t.FullText, true
}

// Load lit l'enregistrement en cache (*store.NotCachedError si absent).
func (s *Service) Load(videoID string) (*transcript.Transcript, error) {
	id, err := yt.ExtractVideoID(videoID)
	if err != nil {
		return nil, err
	}
	return s.store.Load(id)
}

// IsCached indique si un enregistrement existe pour videoID.
func (s *Service) IsCached(videoID string) (bool, error) {
	id, err := yt.ExtractVideoID(videoID)
	if err != nil {
		return false, err
	}
	return s.store.Exists(id)
}

// List retourne les identifiants en cache, triés.
func (s *Service) List() ([]string, error) {
	return s.store.List()
}

// Delete supprime l'enregistrement de videoID.
func (s *Service) Delete(videoID string) error {
	id, err := yt.ExtractVideoID(videoID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("transcript supprimé", zap.String("video_id", id))
	return nil
}
