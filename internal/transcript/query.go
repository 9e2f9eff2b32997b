package transcript

import (
	"strings"

	"github.com/patrickprogramme/segscript/internal/timecode"
)

// Overlaps indique si le fragment intersecte la fenêtre (intervalles fermés).
// Un fragment partiellement dans la fenêtre, ou qui la couvre entièrement, compte.
func Overlaps(f Fragment, w timecode.Window) bool {
	return f.Start <= w.End && f.End() >= w.Start
}

// Select retourne, dans l'ordre d'origine, tous les fragments qui intersectent w.
// Parcours linéaire complet : l'ordre fourni par la source n'est pas supposé trié.
// Une fenêtre inversée (End < Start) est appliquée littéralement.
func Select(fragments []Fragment, w timecode.Window) []Fragment {
	var out []Fragment
	for _, f := range fragments {
		if Overlaps(f, w) {
			out = append(out, f)
		}
	}
	return out
}

// Join concatène les textes avec un seul espace entre chaque fragment.
func Join(fragments []Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// Query retourne le texte du transcript pour la fenêtre w.
// w == nil : FullText tel que persisté, sans recalcul.
func (t *Transcript) Query(w *timecode.Window) string {
	if w == nil {
		return t.FullText
	}
	return Join(Select(t.Fragments, *w))
}
