package captions

import (
	"errors"
	"strings"

	"github.com/patrickprogramme/segscript/internal/yt"
	"github.com/patrickprogramme/segscript/pkg/model"
)

var ErrNoSubtitle = errors.New("no subtitle available for requested languages")

// SelectTrack choisit la piste à télécharger.
//
// Pour chaque langue préférée, dans l'ordre : la piste manuelle puis la caption
// automatique "<lang>-orig" ou "<lang>" (l'inverse si preferManual est faux).
// Sans correspondance : première piste manuelle, puis première caption
// automatique originale. Les pistes de Meta sont triées par code, le choix est
// donc déterministe.
func SelectTrack(m *model.Meta, languages []string, preferManual bool) (model.SubtitleTrack, error) {
	if m == nil {
		return model.SubtitleTrack{}, ErrNoSubtitle
	}

	for _, lang := range languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		manual, okManual := findManual(m.ManualSubs, lang)
		auto, okAuto := findAuto(m.AutoSubs, lang)
		if preferManual {
			if okManual {
				return manual, nil
			}
			if okAuto {
				return auto, nil
			}
		} else {
			if okAuto {
				return auto, nil
			}
			if okManual {
				return manual, nil
			}
		}
	}

	if len(m.ManualSubs) > 0 {
		return m.ManualSubs[0], nil
	}
	for _, t := range m.AutoSubs {
		if yt.IsOriginal(t) {
			return t, nil
		}
	}
	return model.SubtitleTrack{}, ErrNoSubtitle
}

func findManual(tracks []model.SubtitleTrack, lang string) (model.SubtitleTrack, bool) {
	for _, t := range tracks {
		if strings.EqualFold(t.Lang, lang) {
			return t, true
		}
	}
	return model.SubtitleTrack{}, false
}

// findAuto préfère "<lang>-orig" (langue parlée) à "<lang>" (traduction possible).
func findAuto(tracks []model.SubtitleTrack, lang string) (model.SubtitleTrack, bool) {
	var plain model.SubtitleTrack
	found := false
	for _, t := range tracks {
		switch {
		case strings.EqualFold(t.Lang, lang+"-orig"):
			return t, true
		case !found && strings.EqualFold(t.Lang, lang):
			plain, found = t, true
		}
	}
	return plain, found
}
