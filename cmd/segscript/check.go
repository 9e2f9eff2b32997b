package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/segscript/internal/app"
	"github.com/patrickprogramme/segscript/internal/bootstrap"
	"github.com/patrickprogramme/segscript/internal/ui"
	"github.com/patrickprogramme/segscript/internal/yt"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var noUpdate bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Vérifie la configuration, le cache et yt-dlp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "config      : %s\n", cfg.FilePath())

			root, err := cfg.StorageRoot()
			if err != nil {
				return err
			}
			if err := bootstrap.EnsureStorageDir(root); err != nil {
				return err
			}
			fmt.Fprintf(out, "cache       : %s\n", root)
			fmt.Fprintf(out, "langues     : %v (manuels d'abord : %v)\n", cfg.Languages, cfg.PreferManualSubs)

			warnings, err := cfg.ValidateYtDlpPresence()
			for _, w := range warnings {
				fmt.Fprintf(out, "yt-dlp      : %s\n", w)
			}
			if err != nil {
				return err
			}

			_, version, err := yt.InitYtDlp(ctx, cfg.YtDlp)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "version     : %s\n", version)

			if noUpdate {
				return nil
			}
			tui := ui.NewTerminalWith(cmd.InOrStdin(), out, cmd.ErrOrStderr(), nil)
			_, err = app.YtDlpUpdateCheck(ctx, tui, nil, version)
			return err
		},
	}
	cmd.Flags().BoolVar(&noUpdate, "no-update-check", false, "ne pas interroger GitHub")
	return cmd
}
