package captions

import "strings"

// rawJSON3 représente la structure "brute" d'une piste json3 de YouTube.
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
	// autres champs ignorés (wpWinPosId, wWinId, etc.)
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// IsNewlineOnly indique si l'event est uniquement un retour à la ligne.
// Il retourne true pour des segs qui ne contiennent que "\n", "\\n" ou des espaces.
func (e rawEvent) IsNewlineOnly() bool {
	if len(e.Segs) == 0 {
		return false
	}
	for _, s := range e.Segs {
		t := strings.TrimSpace(s.Utf8)
		if t == "" || t == "\\n" {
			continue
		}
		return false
	}
	return true
}

func (e rawEvent) startMs() int64 {
	if e.TStartMs == nil {
		return 0
	}
	return *e.TStartMs
}

func (e rawEvent) durationMs() int64 {
	if e.DDurationMs == nil || *e.DDurationMs < 0 {
		return 0
	}
	return *e.DDurationMs
}
