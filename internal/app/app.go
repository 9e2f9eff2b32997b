package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/ui"
	"github.com/patrickprogramme/segscript/internal/updater"
	"github.com/patrickprogramme/segscript/pkg/github"
)

const defaultUpdateTimeout = 15 * time.Second

// App pilote le flux interactif : identifiant, chargement ou acquisition, puis menu.
type App struct {
	svc    *Service
	ui     ui.Interface
	logger *zap.Logger
	// copyResult reçoit le texte affiché (presse-papier), nil => désactivé
	copyResult func(string) error
}

// New construit l'application. copyResult peut être nil.
func New(svc *Service, uiClient ui.Interface, copyResult func(string) error, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{svc: svc, ui: uiClient, copyResult: copyResult, logger: logger}
}

// Run exécute le flux interactif. Les échecs d'acquisition et les saisies
// invalides sont affichés, seules les erreurs d'entrée/sortie sont renvoyées.
func (a *App) Run(ctx context.Context) error {
	id, err := a.ui.GetVideoID(ctx)
	if err != nil {
		return fmt.Errorf("get video id: %w", err)
	}

	cached, err := a.svc.IsCached(id)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if cached {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Transcript for video %s already exists. Loading from file...", id))
		t, err := a.svc.Load(id)
		if err != nil {
			return fmt.Errorf("load %s: %w", id, err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Loaded transcript for video: %s", t.VideoID))
	} else {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Fetching transcript for video %s...", id))
		if a.svc.FetchAndCache(ctx, id) != StatusOK {
			a.ui.PrintError(ctx, "YouTube video ID incorrect or transcript unavailable!")
			return nil
		}
		a.ui.PrintInfo(ctx, "Transcript saved successfully.")
	}

	choice, err := a.ui.AskChoice(ctx)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}

	var text string
	switch choice {
	case ui.ChoiceFull:
		full, ok := a.svc.LoadFullText(id)
		if !ok {
			a.ui.PrintError(ctx, fmt.Sprintf("The transcript for video id: %s does not exist", id))
			return nil
		}
		text = full
		a.ui.PrintInfo(ctx, "\nFull transcript:")
	case ui.ChoiceRange:
		rng, err := a.ui.AskRange(ctx)
		if err != nil {
			return fmt.Errorf("range: %w", err)
		}
		text = a.svc.Query(ctx, id, rng)
		a.ui.PrintInfo(ctx, fmt.Sprintf("\nTranscript from %s:", rng))
	default:
		a.ui.PrintError(ctx, "Invalid choice!")
		return nil
	}

	a.ui.PrintInfo(ctx, text)
	a.copy(ctx, text)
	return nil
}

func (a *App) copy(ctx context.Context, text string) {
	if a.copyResult == nil || text == "" {
		return
	}
	if err := a.copyResult(text); err != nil {
		a.logger.Warn("copie dans le presse-papier impossible", zap.Error(err))
		return
	}
	a.ui.PrintInfo(ctx, "(copié dans le presse-papier)")
}

// YtDlpUpdateCheck compare la version installée de yt-dlp à la dernière release
// et affiche le lien de mise à jour si besoin. gh peut être nil (API publique).
func YtDlpUpdateCheck(ctx context.Context, u ui.Interface, gh *github.Client, version string) (*updater.UpdateCheck, error) {
	uc, cancel := context.WithTimeout(ctx, defaultUpdateTimeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, gh, version)
	if err != nil {
		return nil, fmt.Errorf("vérification de mise à jour a échoué : %w", err)
	}

	if check.IsUpToDate {
		u.PrintInfo(ctx, fmt.Sprintf("✅ yt-dlp est à jour (%s)", check.CurrentVersion))
		return check, nil
	}

	u.PrintInfo(ctx, "⚠️ Nouvelle version de yt-dlp disponible :")
	u.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	u.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	u.PrintInfo(ctx, "Téléchargez-la ici:")
	u.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))
	return check, nil
}
