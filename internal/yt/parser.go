package yt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickprogramme/segscript/pkg/model"
)

const origSuffix = "-orig"

// ParseYTDLP transforme le JSON brut en struct Meta.
// Seules les pistes au format json3 sont conservées.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	return &model.Meta{
		ID:         y.ID,
		Title:      y.Title,
		Uploader:   y.Uploader,
		Duration:   y.Duration,
		ManualSubs: selectTracks(y.Subtitles, model.FormatJSON3, model.SubSourceManual),
		AutoSubs:   selectTracks(y.AutomaticCaptions, model.FormatJSON3, model.SubSourceAutomatic),
	}, nil
}

// selectTracks parcourt une map de yt-dlp (subtitles ou automatic_captions) et
// renvoie les pistes au format demandé, triées par code langue.
// Les captions automatiques traduites (ni "-orig", ni langue d'origine) sont
// conservées : le choix entre elles se fait à la sélection.
func selectTracks(items map[string][]subtitleItem, format model.Format, source model.SubSource) []model.SubtitleTrack {
	var out []model.SubtitleTrack
	for lang, tracks := range items {
		// "live_chat" n'est pas une piste de sous-titres
		if lang == "live_chat" {
			continue
		}
		for _, it := range tracks {
			pf, err := model.ParseFormat(it.Ext)
			if err != nil || pf != format || it.URL == "" {
				continue
			}
			out = append(out, model.SubtitleTrack{
				Lang:   lang,
				Name:   it.Name,
				Format: pf,
				URL:    it.URL,
				Source: source,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lang < out[j].Lang })
	return out
}

// IsOriginal indique si une caption automatique est dans la langue parlée de la vidéo.
func IsOriginal(t model.SubtitleTrack) bool {
	return strings.HasSuffix(t.Lang, origSuffix)
}
