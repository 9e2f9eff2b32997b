// Package store persiste un transcript par vidéo, sous la forme d'un fichier
// JSON "<racine>/<video_id>.json".
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/segscript/internal/fsutil"
	"github.com/patrickprogramme/segscript/internal/transcript"
)

const (
	fileExt  = ".json"
	filePerm = 0o644
)

// ErrNotCached : aucun enregistrement pour l'identifiant demandé.
var ErrNotCached = errors.New("transcript absent du cache")

// NotCachedError porte l'identifiant manquant.
type NotCachedError struct {
	VideoID string
}

func (e *NotCachedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrNotCached, e.VideoID)
}

func (e *NotCachedError) Is(target error) bool {
	return target == ErrNotCached
}

// FileStore range les transcripts dans un répertoire racine.
// Pas de verrou : deux écritures concurrentes sur le même id, la dernière gagne.
type FileStore struct {
	root string
}

// New construit un FileStore. root n'est créé qu'à la première sauvegarde.
func New(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string {
	return s.root
}

// Path retourne le chemin du fichier pour videoID, après validation de la clé.
func (s *FileStore) Path(videoID string) (string, error) {
	if err := fsutil.ValidateFileKey(videoID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, videoID+fileExt), nil
}

// Exists indique si un enregistrement existe pour videoID.
func (s *FileStore) Exists(videoID string) (bool, error) {
	p, err := s.Path(videoID)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

// Save écrit t de façon atomique, en écrasant une version précédente.
func (s *FileStore) Save(t *transcript.Transcript) error {
	if t == nil {
		return fmt.Errorf("Save: transcript nil")
	}
	p, err := s.Path(t.VideoID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // garder le texte lisible ("&", "<", ">")
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encodage JSON de %s: %w", t.VideoID, err)
	}

	if err := fsutil.WriteFileAtomic(p, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("écriture %s: %w", p, err)
	}
	return nil
}

// Load lit l'enregistrement de videoID. Retourne *NotCachedError si absent.
func (s *FileStore) Load(videoID string) (*transcript.Transcript, error) {
	p, err := s.Path(videoID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotCachedError{VideoID: videoID}
		}
		return nil, fmt.Errorf("lecture %s: %w", p, err)
	}

	var t transcript.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("décodage %s: %w", p, err)
	}
	return &t, nil
}

// Delete supprime l'enregistrement. Retourne *NotCachedError s'il n'existe pas.
func (s *FileStore) Delete(videoID string) error {
	p, err := s.Path(videoID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotCachedError{VideoID: videoID}
		}
		return fmt.Errorf("suppression %s: %w", p, err)
	}
	return nil
}

// List retourne les identifiants présents, triés.
func (s *FileStore) List() ([]string, error) {
	ids, err := fsutil.ListBaseNames(s.root, fileExt)
	if err != nil {
		return nil, fmt.Errorf("liste %s: %w", s.root, err)
	}
	return ids, nil
}
