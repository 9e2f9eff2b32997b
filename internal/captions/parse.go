package captions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/patrickprogramme/segscript/internal/transcript"
)

var reMultiSpace = regexp.MustCompile(`\s+`)

// ParseJSON3Bytes parse un blob json3 déjà en mémoire.
// Les champs inconnus sont ignorés : le json3 en contient beaucoup.
func ParseJSON3Bytes(b []byte) (rawJSON3, error) {
	var raw rawJSON3
	if len(bytes.TrimSpace(b)) == 0 {
		return raw, fmt.Errorf("ParseJSON3Bytes: empty input")
	}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&raw); err != nil {
		return raw, fmt.Errorf("ParseJSON3Bytes: decode error: %w", err)
	}
	return raw, nil
}

// EventText assemble et nettoie le texte d'un event
func EventText(ev rawEvent) string {
	var parts []string
	for _, seg := range ev.Segs {
		if txt := cleanSeg(seg.Utf8); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

// cleanSeg normalise un seg : convertit les "\n" et "\\n" en espaces,
// remplace les séquences d'espaces par un seul espace, et trim.
func cleanSeg(s string) string {
	s = strings.ReplaceAll(s, "\\n", " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ToFragments convertit les events en fragments, dans l'ordre de la piste.
// Les events sans texte (retours à la ligne, fenêtres vides) sont ignorés.
func ToFragments(raw rawJSON3) []transcript.Fragment {
	out := make([]transcript.Fragment, 0, len(raw.Events))
	for _, ev := range raw.Events {
		if ev.IsNewlineOnly() {
			continue
		}
		text := EventText(ev)
		if text == "" {
			continue
		}
		out = append(out, transcript.Fragment{
			Text:     text,
			Start:    float64(ev.startMs()) / 1000,
			Duration: float64(ev.durationMs()) / 1000,
		})
	}
	return out
}

// DecodeFragments enchaîne ParseJSON3Bytes et ToFragments.
func DecodeFragments(b []byte) ([]transcript.Fragment, error) {
	raw, err := ParseJSON3Bytes(b)
	if err != nil {
		return nil, err
	}
	return ToFragments(raw), nil
}
