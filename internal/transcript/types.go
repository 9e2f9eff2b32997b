package transcript

import "strings"

// Fragment représente un segment de sous-titre horodaté.
// Start et Duration sont en secondes depuis le début de la vidéo.
type Fragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End retourne la fin du fragment (Start + Duration).
func (f Fragment) End() float64 {
	return f.Start + f.Duration
}

// Transcript est l'enregistrement persisté pour une vidéo.
// Les noms JSON sont ceux des fichiers de cache existants.
//
// FullText est calculé une seule fois à l'acquisition (voir BuildFullText) et
// n'est jamais recalculé à la lecture : il doit rester égal, au caractère près,
// à ce qui a été sauvegardé.
type Transcript struct {
	VideoID      string     `json:"video_id"`
	Language     string     `json:"language"`
	LanguageCode string     `json:"language_code"`
	IsGenerated  bool       `json:"is_generated"`
	Fragments    []Fragment `json:"snippets"`
	FullText     string     `json:"transcript"`
}

// New construit un Transcript et calcule FullText à partir des fragments.
// Fonction pure, pas d'I/O.
func New(videoID, language, languageCode string, isGenerated bool, fragments []Fragment) *Transcript {
	if fragments == nil {
		fragments = []Fragment{}
	}
	return &Transcript{
		VideoID:      videoID,
		Language:     language,
		LanguageCode: languageCode,
		IsGenerated:  isGenerated,
		Fragments:    fragments,
		FullText:     BuildFullText(fragments),
	}
}

// BuildFullText concatène les textes en préfixant chaque fragment d'un espace,
// y compris le premier. L'espace initial est conservé pour rester compatible
// octet par octet avec les fichiers déjà en cache.
func BuildFullText(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteByte(' ')
		b.WriteString(f.Text)
	}
	return b.String()
}

// Duration retourne la fin du dernier fragment, 0 si vide.
func (t *Transcript) Duration() float64 {
	var end float64
	for _, f := range t.Fragments {
		if e := f.End(); e > end {
			end = e
		}
	}
	return end
}
