// Package timecode convertit les notations horaires saisies par l'utilisateur
// ("MM:SS", "HH:MM:SS", "début;fin") en secondes sur la timeline de la vidéo.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrFormat est la sentinelle commune à toutes les erreurs de format.
var ErrFormat = errors.New("format de temps invalide")

// FormatError identifie la chaîne fautive et la raison du rejet.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrFormat, e.Input, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Window est une fenêtre temporelle [Start, End] en secondes.
// Aucun ordre n'est imposé : une fenêtre inversée est conservée telle quelle.
type Window struct {
	Start float64
	End   float64
}

func (w Window) String() string {
	return fmt.Sprintf("%s;%s", Format(w.Start), Format(w.End))
}

// Parse convertit "MM:SS" ou "HH:MM:SS" en secondes.
// Les heures et minutes sont entières, les secondes acceptent une partie décimale.
// Pas de borne sur les composants : "90:00" vaut 5400.
func Parse(s string) (float64, error) {
	parts := strings.Split(s, ":")

	switch len(parts) {
	case 2: // MM:SS
		m, err := parseInt(s, parts[0])
		if err != nil {
			return 0, err
		}
		sec, err := parseSeconds(s, parts[1])
		if err != nil {
			return 0, err
		}
		return float64(m)*60 + sec, nil
	case 3: // HH:MM:SS
		h, err := parseInt(s, parts[0])
		if err != nil {
			return 0, err
		}
		m, err := parseInt(s, parts[1])
		if err != nil {
			return 0, err
		}
		sec, err := parseSeconds(s, parts[2])
		if err != nil {
			return 0, err
		}
		return float64(h)*3600 + float64(m)*60 + sec, nil
	default:
		return 0, &FormatError{Input: s, Reason: "utiliser MM:SS ou HH:MM:SS"}
	}
}

// ParseRange découpe "début;fin" et convertit chaque borne avec Parse.
func ParseRange(s string) (Window, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return Window{}, &FormatError{Input: s, Reason: "utiliser 'début;fin' (ex: '10:00;20:00')"}
	}
	start, err := Parse(parts[0])
	if err != nil {
		return Window{}, err
	}
	end, err := Parse(parts[1])
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// Format rend des secondes en "HH:MM:SS" (2 chiffres par composant, secondes tronquées).
// Exemple : 65 -> "00:01:05", 3661.7 -> "01:01:01".
func Format(seconds float64) string {
	neg := ""
	if seconds < 0 {
		neg = "-"
		seconds = -seconds
	}
	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", neg, h, m, sec)
}

func parseInt(input, part string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil {
		return 0, &FormatError{Input: input, Reason: fmt.Sprintf("composant entier invalide %q", part)}
	}
	return v, nil
}

func parseSeconds(input, part string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
	if err != nil {
		return 0, &FormatError{Input: input, Reason: fmt.Sprintf("secondes invalides %q", part)}
	}
	return v, nil
}
