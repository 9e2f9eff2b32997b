package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/app"
	"github.com/patrickprogramme/segscript/internal/clipboard"
	"github.com/patrickprogramme/segscript/internal/config"
	"github.com/patrickprogramme/segscript/internal/logging"
	"github.com/patrickprogramme/segscript/internal/store"
	"github.com/patrickprogramme/segscript/internal/ui"
)

// globalFlags : flags communs à toutes les commandes, prioritaires sur la config
type globalFlags struct {
	configPath string
	storageDir string
	ytDlpPath  string
	logLevel   string
	copy       bool
}

// runtimeEnv regroupe les dépendances construites à partir de la config.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.FileStore
	svc    *app.Service
	ui     ui.Interface
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "segscript",
		Short: "Récupère, met en cache et interroge les transcriptions de vidéos YouTube",
		Long: `segscript télécharge les sous-titres d'une vidéo YouTube via yt-dlp,
les enregistre dans un cache local (un fichier JSON par vidéo) puis renvoie
le texte complet ou le texte d'une plage de temps "début;fin".

Sans sous-commande, segscript lance le mode interactif.`,
		Example: `  segscript
  segscript query dQw4w9WgXcQ "00:30;01:10"
  segscript fetch https://youtu.be/dQw4w9WgXcQ --refresh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			return app.New(env.svc, env.ui, env.copyFunc(), env.logger).Run(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "chemin du fichier de configuration (défaut : segscript.yaml à côté de l'exécutable)")
	pf.StringVar(&flags.storageDir, "storage-dir", "", "répertoire du cache des transcriptions")
	pf.StringVar(&flags.ytDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp (ou son dossier)")
	pf.StringVar(&flags.logLevel, "log-level", "", "niveau de log : debug, info, warn, error")
	pf.BoolVar(&flags.copy, "copy", false, "copier le résultat dans le presse-papier")

	root.AddCommand(
		newFetchCmd(flags),
		newQueryCmd(flags),
		newShowCmd(flags),
		newListCmd(flags),
		newRmCmd(flags),
		newCheckCmd(flags),
	)
	return root
}

// defaultConfigPath : fichier de config à côté de l'exécutable, sinon dans le dossier courant.
func defaultConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}

// loadConfig : défauts < yaml < SEGSCRIPT_* < flags.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if s := strings.TrimSpace(flags.storageDir); s != "" {
		cfg.StorageDir = s
	}
	if p := strings.TrimSpace(flags.ytDlpPath); p != "" {
		cfg.YtDlp.Path = p
		cfg.ResolveYtDlpPath()
	}
	if l := strings.TrimSpace(flags.logLevel); l != "" {
		cfg.LogLevel = strings.ToLower(l)
	}
	if flags.copy {
		cfg.CopyToClipboard = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(ctx context.Context, flags *globalFlags) (*runtimeEnv, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, nil)
	if err != nil {
		return nil, err
	}

	root, err := cfg.StorageRoot()
	if err != nil {
		return nil, err
	}
	st := store.New(root)
	tui := ui.NewTerminal()

	acq := newLazyAcquirer(cfg, tui, logger)
	logger.Debug("configuration chargée",
		zap.String("config", cfg.FilePath()),
		zap.String("storage_dir", root),
		zap.Strings("languages", cfg.Languages),
	)

	return &runtimeEnv{
		cfg:    cfg,
		logger: logger,
		store:  st,
		svc:    app.NewService(st, acq, logger),
		ui:     tui,
	}, nil
}

// copyFunc retourne la copie vers le presse-papier si elle est activée.
func (e *runtimeEnv) copyFunc() func(string) error {
	if !e.cfg.CopyToClipboard {
		return nil
	}
	if clipboard.Unsupported() {
		e.logger.Warn("presse-papier indisponible sur ce système, copie désactivée")
		return nil
	}
	return clipboard.WriteAll
}
