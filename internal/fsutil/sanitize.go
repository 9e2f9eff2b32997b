package fsutil

import (
	"errors"
	"fmt"
	"regexp"
)

// limite de longueur d'une clé de fichier
const maxKeyLen = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

var ErrInvalidKey = errors.New("clé de fichier invalide")

// ValidateFileKey vérifie qu'une chaîne peut servir telle quelle de nom de fichier
// (sans extension) dans un répertoire de cache. Contrairement à un nettoyage,
// la clé n'est jamais modifiée : elle est acceptée ou rejetée.
// Rejette : chaîne vide, "." et "..", caractères interdits, longueur excessive.
func ValidateFileKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: vide", ErrInvalidKey)
	case key == "." || key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case len(key) > maxKeyLen:
		return fmt.Errorf("%w: plus de %d octets", ErrInvalidKey, maxKeyLen)
	case invalidFileRunes.MatchString(key):
		return fmt.Errorf("%w: caractère interdit dans %q", ErrInvalidKey, key)
	}
	return nil
}
