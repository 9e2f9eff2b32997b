package yt

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	ytRegex      = regexp.MustCompile(`(?i)https?://(www\.|m\.)?(youtube\.com/(watch\?|shorts/|embed/|live/)|youtu\.be/)`)
	videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// IsYouTubeURL indique si s ressemble à une URL de vidéo YouTube.
func IsYouTubeURL(s string) bool {
	return ytRegex.MatchString(strings.TrimSpace(s))
}

// ValidVideoID indique si id a la forme d'un identifiant YouTube (11 caractères).
func ValidVideoID(id string) bool {
	return videoIDRegex.MatchString(id)
}

// WatchURL retourne l'URL de la page de la vidéo.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ExtractVideoID accepte un identifiant nu ou une URL YouTube et retourne l'identifiant.
func ExtractVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if ValidVideoID(s) {
		return s, nil
	}
	if !IsYouTubeURL(s) {
		return "", fmt.Errorf("identifiant de vidéo invalide : %q", s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("url invalide %q : %w", s, err)
	}

	var id string
	switch {
	case strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "youtu.be"):
		id = strings.Trim(u.Path, "/")
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	default:
		// /shorts/<id>, /embed/<id>, /live/<id>
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			id = parts[1]
		}
	}

	if !ValidVideoID(id) {
		return "", fmt.Errorf("aucun identifiant de vidéo dans %q", s)
	}
	return id, nil
}
