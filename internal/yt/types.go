package yt

import "time"

type subtitleItem struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ytdlpOutput représente la partie utile de la sortie JSON de yt-dlp pour une vidéo.
//
// Subtitles et AutomaticCaptions sont des maps où :
//   - la clé correspond au code langue de la piste (ex. "fr", "en", "fr-orig").
//   - la valeur liste les pistes disponibles pour cette langue, une par format,
//     avec au minimum l'extension (Ext) et l'URL de téléchargement.
type ytdlpOutput struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	Duration          float64                   `json:"duration"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

// ExtractedRaw contient le JSON brut, les lignes d'avertissement et la durée d'extraction
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
	Elapsed  time.Duration
}

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + options.
type YtDlp struct {
	Name    string
	Path    string // chemin résolu vers l'exe, vide => recherche dans le PATH
	Options Options
}

func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}
