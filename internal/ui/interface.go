package ui

import "context"

type Interface interface {
	// GetVideoID renvoie un identifiant de vidéo valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetVideoID(ctx context.Context) (string, error)

	// AskChoice affiche le menu et renvoie la saisie brute ("1", "2", ...).
	AskChoice(ctx context.Context) (string, error)
	// AskRange demande une plage "début;fin".
	AskRange(ctx context.Context) (string, error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
