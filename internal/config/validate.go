package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate vérifie les contraintes déclarées dans les tags `validate` de Config.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: contrainte %q non respectée (valeur %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("configuration invalide : %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("configuration invalide : %w", err)
	}
	return nil
}

// ValidateYtDlpPresence vérifie de manière statique que yt-dlp est trouvable :
// au chemin résolu s'il est défini, sinon dans le PATH.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateYtDlpPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	// assure que le resolved path est calculé
	c.ResolveYtDlpPath()

	p := strings.TrimSpace(c.YtDlp.ResolvedPath)
	if p == "" {
		if found, lerr := exec.LookPath(c.YtDlp.Name); lerr != nil {
			warnings = append(warnings, fmt.Sprintf("%s introuvable dans le PATH", c.YtDlp.Name))
		} else {
			warnings = append(warnings, fmt.Sprintf("yt-dlp trouvé dans le PATH : %s", found))
		}
		return warnings, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin yt-dlp n'existe pas : %s", parent))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin yt-dlp n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("yt-dlp introuvable à l'emplacement configuré : %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour yt-dlp est un répertoire : %s", p)
	}
	return warnings, nil
}
