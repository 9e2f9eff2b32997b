package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/segscript/internal/assets"
	"github.com/patrickprogramme/segscript/internal/bootstrap"
	"github.com/patrickprogramme/segscript/internal/fsutil"
)

const (
	CurrentConfigVersion = 1

	// DefaultFileName : fichier de config à côté de l'exécutable
	DefaultFileName = "segscript.yaml"
	// EnvPrefix : préfixe des variables d'environnement (SEGSCRIPT_STORAGE_DIR, ...)
	EnvPrefix = "segscript"

	defaultStorageDir      = "~/.segscript"
	defaultLogLevel        = "warn"
	defaultFetchTimeout    = 15 * time.Second
	defaultExtractTimeout  = 2 * time.Minute
	defaultMaxCaptionBytes = 10_000_000
)

// YtDlpConfig : emplacement et options du binaire yt-dlp
type YtDlpConfig struct {
	Name            string `yaml:"name"`
	Path            string `yaml:"path"`
	ShowWarnings    bool   `yaml:"show_warnings"`
	AutoUpdateCheck bool   `yaml:"auto_update_check"`

	// ResolvedPath contient le chemin effectif vers l'exécutable
	// (vide => recherche de Name dans le PATH)
	ResolvedPath string `yaml:"-"`
}

// Config regroupe les paramètres de segscript.
// Ordre de priorité : valeurs par défaut < fichier YAML < variables SEGSCRIPT_* < flags CLI.
type Config struct {
	// Cache
	StorageDir string `yaml:"storage_dir" envconfig:"STORAGE_DIR" validate:"required"`

	// Sous-titres
	Languages        []string `yaml:"languages" envconfig:"LANGUAGES" validate:"min=1,dive,required"`
	PreferManualSubs bool     `yaml:"prefer_manual_subs" envconfig:"PREFER_MANUAL_SUBS"`
	MaxCaptionBytes  int64    `yaml:"max_caption_bytes" envconfig:"MAX_CAPTION_BYTES" validate:"gt=0"`

	// Délais
	FetchTimeout   time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" validate:"gt=0"`
	ExtractTimeout time.Duration `yaml:"extract_timeout" envconfig:"EXTRACT_TIMEOUT" validate:"gt=0"`

	// Sortie
	CopyToClipboard bool   `yaml:"copy_to_clipboard" envconfig:"COPY_TO_CLIPBOARD"`
	LogLevel        string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	YtDlp YtDlpConfig `yaml:"yt_dlp" ignored:"true"`

	ConfigVersion int `yaml:"config_version" ignored:"true"`

	configFilePath string
}

// Default retourne la configuration par défaut (fallback si l'asset embarqué est manquant).
func Default() *Config {
	c := &Config{}

	c.StorageDir = defaultStorageDir

	c.Languages = []string{"en"}
	c.PreferManualSubs = true
	c.MaxCaptionBytes = defaultMaxCaptionBytes

	c.FetchTimeout = defaultFetchTimeout
	c.ExtractTimeout = defaultExtractTimeout

	c.CopyToClipboard = false
	c.LogLevel = defaultLogLevel

	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion

	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets.
// Les variables SEGSCRIPT_* sont appliquées par-dessus le fichier, puis la config est validée.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	// si le fichier n'existe pas -> le créer à partir de l'asset embarqué
	if _, err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	// (avant l'overlay env, pour ne pas écrire des valeurs d'environnement dans le fichier)
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse décode un YAML par-dessus les valeurs par défaut : les champs absents
// conservent leur valeur par défaut. Pas d'accès disque, pas d'overlay env.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// config_version absent => fichier d'une version antérieure au versioning
	cfg.ConfigVersion = 0

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("décodage yaml : %w", err)
	}

	cfg.normalizeConfig()
	return cfg, nil
}

// ApplyEnv applique les variables SEGSCRIPT_* (seules les variables définies écrasent).
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("lecture des variables d'environnement %s_* : %w", strings.ToUpper(EnvPrefix), err)
	}
	c.normalizeConfig()
	return nil
}

// FilePath retourne le chemin du fichier d'où la config a été lue ("" si aucun).
func (c *Config) FilePath() string {
	return c.configFilePath
}

// StorageRoot retourne StorageDir avec "~" développé.
func (c *Config) StorageRoot() (string, error) {
	return fsutil.ExpandHome(c.StorageDir)
}

func (c *Config) normalizeConfig() {
	c.StorageDir = strings.TrimSpace(c.StorageDir)
	if c.StorageDir == "" {
		c.StorageDir = defaultStorageDir
	}

	langs := make([]string, 0, len(c.Languages))
	for _, l := range c.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	c.Languages = langs

	c.LogLevel = strings.TrimSpace(strings.ToLower(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.ExtractTimeout <= 0 {
		c.ExtractTimeout = defaultExtractTimeout
	}
	if c.MaxCaptionBytes <= 0 {
		c.MaxCaptionBytes = defaultMaxCaptionBytes
	}

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	// si Path est vide -> recherche dans le PATH au moment de l'exécution
	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
