package model

import (
	"fmt"
	"strings"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// Format des pistes de sous-titres proposées par yt-dlp.
type Format string

const (
	FormatJSON3 Format = "json3"
	FormatSRV1  Format = "srv1"
	FormatVTT   Format = "vtt"
)

// ParseFormat : du format en chaine à la constante, erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json3":
		return FormatJSON3, nil
	case "srv1":
		return FormatSRV1, nil
	case "vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("format de sous-titres inconnu: %s", s)
	}
}

// SubtitleTrack décrit une piste de sous-titres associée à une vidéo.
// Lang est la clé yt-dlp (ex: "en", "en-orig"), Name le libellé humain ("English (Original)").
type SubtitleTrack struct {
	Lang   string    `json:"lang"`
	Name   string    `json:"name,omitempty"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

// LangCode retourne le code langue sans le suffixe "-orig" des captions automatiques.
func (s SubtitleTrack) LangCode() string {
	return strings.TrimSuffix(s.Lang, "-orig")
}

// DisplayName retourne le libellé de la langue, ou le code à défaut.
func (s SubtitleTrack) DisplayName() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return s.LangCode()
}

func (s SubtitleTrack) String() string {
	return fmt.Sprintf("SubtitleTrack(lang=%s, format=%s, source=%s)", s.Lang, s.Format, s.Source)
}

// Meta regroupe les métadonnées extraites d'une vidéo YouTube.
// Les pistes sont ordonnées par code langue pour que la sélection soit déterministe.
type Meta struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Uploader   string          `json:"uploader,omitempty"`
	Duration   float64         `json:"duration,omitempty"`
	AutoSubs   []SubtitleTrack `json:"subtitles,omitempty"`
	ManualSubs []SubtitleTrack `json:"manual_subtitles,omitempty"`
}

func (m Meta) HasManualSubs() bool {
	return len(m.ManualSubs) != 0
}

func (m Meta) HasAutoSubs() bool {
	return len(m.AutoSubs) != 0
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Subtitles=%d]",
		m.ID, m.Title, m.Uploader, len(m.AutoSubs)+len(m.ManualSubs))
}
