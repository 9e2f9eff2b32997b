package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/app"
	"github.com/patrickprogramme/segscript/internal/store"
	"github.com/patrickprogramme/segscript/internal/timecode"
)

func newFetchCmd(flags *globalFlags) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "fetch <id|url>",
		Short: "Télécharge et met en cache la transcription d'une vidéo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			out := cmd.OutOrStdout()
			if !refresh {
				if cached, err := env.svc.IsCached(args[0]); err == nil && cached {
					fmt.Fprintln(out, "Transcript already cached (use --refresh to fetch again).")
					return nil
				}
			}

			t, err := env.svc.FetchAndCacheErr(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("YouTube video ID incorrect or transcript unavailable: %w", err)
			}
			fmt.Fprintf(out, "Transcript saved successfully: %s (%s, %d fragments, %s)\n",
				t.VideoID, t.LanguageCode, len(t.Fragments), timecode.Format(t.Duration()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "télécharger à nouveau même si la vidéo est en cache")
	return cmd
}

func newQueryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "query <id|url> [start;end]",
		Short: "Affiche le texte d'une plage de temps (ou le texte complet)",
		Long: `Affiche le texte des fragments qui chevauchent la plage "début;fin".
Chaque borne est au format MM:SS ou HH:MM:SS. Sans plage, le texte complet est affiché.
La transcription est téléchargée si elle n'est pas encore en cache.`,
		Example: `  segscript query dQw4w9WgXcQ "10:00;20:00"
  segscript query dQw4w9WgXcQ "1:02:03;1:05:00"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			var rng string
			if len(args) == 2 {
				rng = args[1]
			}
			text := env.svc.Query(cmd.Context(), args[0], rng)
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if text == app.MsgFetchFailed || text == app.MsgInvalidRange {
				return errors.New("requête en échec")
			}
			if copyFn := env.copyFunc(); copyFn != nil && text != "" {
				if err := copyFn(text); err != nil {
					env.logger.Warn("copie dans le presse-papier impossible", zap.Error(err))
				}
			}
			return nil
		},
	}
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|url>",
		Short: "Affiche le texte complet en cache, sans téléchargement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			text, ok := env.svc.LoadFullText(args[0])
			if !ok {
				return fmt.Errorf("the transcript for video id: %s does not exist", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Liste les vidéos en cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			ids, err := env.svc.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				t, err := env.store.Load(id)
				if err != nil {
					fmt.Fprintf(out, "%s\t(illisible: %v)\n", id, err)
					continue
				}
				gen := "manual"
				if t.IsGenerated {
					gen = "auto"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", id, t.LanguageCode, gen, timecode.Format(t.Duration()))
			}
			return nil
		},
	}
}

func newRmCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|url>",
		Aliases: []string{"delete"},
		Short:   "Supprime une vidéo du cache",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer func() { _ = env.logger.Sync() }()

			if err := env.svc.Delete(args[0]); err != nil {
				if errors.Is(err, store.ErrNotCached) {
					return fmt.Errorf("aucune transcription en cache pour %s", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
