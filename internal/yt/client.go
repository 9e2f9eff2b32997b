package yt

import "context"

// Interface est l'abstraction de yt-dlp utilisée par l'acquisition des sous-titres.
// Une implémentation factice suffit dans les tests.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error)
}
