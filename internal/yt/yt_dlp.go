package yt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// NewYtDlp construit une instance. resolvedPath est le chemin résolu vers l'exe (peut être vide).
func NewYtDlp(name, resolvedPath string, opts Options) *YtDlp {
	return &YtDlp{
		Name:    name,
		Path:    resolvedPath,
		Options: opts,
	}
}

// CheckBinary vérifie que le binaire existe : au chemin configuré, sinon dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}

	if y.Path == "" {
		if _, err := exec.LookPath(y.Name); err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s) : %w", y.Name, err)
		}
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %w", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire, pas un fichier exécutable : %s", y.Path)
	}
	return nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et renvoie la sortie JSON brute.
// Les lignes qui ne sont pas du JSON sont remontées comme avertissements.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, y.exe(), y.Options.BuildArgs(url)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w, output: %s", err, strings.TrimSpace(string(out)))
	}

	jsonLine, warnings := splitOutput(out)
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", string(out))
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
		Elapsed:  time.Since(start),
	}, nil
}

// splitOutput sépare la ligne JSON (la dernière) des autres lignes de la sortie.
func splitOutput(out []byte) (jsonLine string, warnings []string) {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonLine = line
		} else {
			warnings = append(warnings, line)
		}
	}
	return jsonLine, warnings
}
