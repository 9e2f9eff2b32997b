package yt

// Options représente les flags ajoutés à chaque appel de yt-dlp
type Options struct {
	SkipDownload bool
	NoWarnings   bool // true => ajouter --no-warnings
	NoProgress   bool
	NoUpdate     bool
	NoConfig     bool // true => ajouter --no-config pour ignorer les configs utilisateur
	NoPlaylist   bool
	// IgnoreNoFormats : les vidéos sans format téléchargeable gardent leurs sous-titres
	IgnoreNoFormats bool
}

// NewOptions initialise les options standard, showWarnings vient du yaml de config
func NewOptions(showWarnings bool) Options {
	return Options{
		SkipDownload:    true,
		NoWarnings:      !showWarnings,
		NoProgress:      true,
		NoUpdate:        true,
		NoConfig:        true,
		NoPlaylist:      true,
		IgnoreNoFormats: true,
	}
}

// BuildArgs construit la liste des arguments à passer à yt-dlp pour url.
func (o Options) BuildArgs(url string) []string {
	args := make([]string, 0, 10)
	// --no-config en tête : aucune config locale ne modifie le comportement
	if o.NoConfig {
		args = append(args, "--no-config")
	}
	args = append(args, "-j")
	if o.SkipDownload {
		args = append(args, "--skip-download")
	}
	if o.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if o.NoProgress {
		args = append(args, "--no-progress")
	}
	if o.NoUpdate {
		args = append(args, "--no-update")
	}
	if o.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if o.IgnoreNoFormats {
		args = append(args, "--ignore-no-formats-error")
	}
	args = append(args, url)
	return args
}
