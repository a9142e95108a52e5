package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	CurrentConfigVersion = 1

	// EnvPrefix : EDXDL_USERNAME, EDXDL_PASSWORD, ...
	EnvPrefix = "EDXDL"

	DefaultBaseURL   = "https://courses.edx.org"
	DefaultOutputDir = "Downloaded"
	DefaultUserAgent = "edX-downloader/0.01"
)

// struct pour les paramètres de configuration
type Config struct {
	// Plateforme
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`

	// Identifiants (optionnels)
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Téléchargement
	Format    string `yaml:"format"`
	Subtitles bool   `yaml:"subtitles"`

	// downloader externe (yt-dlp / youtube-dl)
	Downloader struct {
		Name            string `yaml:"name"`
		Path            string `yaml:"path"`
		FormatFlag      string `yaml:"format_flag"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`
		ReleaseRepo     string `yaml:"release_repo"`

		// ResolvedPath contient le chemin effectif vers l'exécutable (vide => PATH)
		ResolvedPath string `yaml:"-"`
	} `yaml:"downloader"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// envOverrides : variables d'environnement lues par envconfig.
type envOverrides struct {
	Username  string `envconfig:"USERNAME"`
	Password  string `envconfig:"PASSWORD"`
	OutputDir string `envconfig:"OUTPUT_DIR"`
	Format    string `envconfig:"FORMAT"`
	BaseURL   string `envconfig:"BASE_URL"`
}

// Default retourne la configuration par défaut (fallback si le fichier est absent).
func Default() *Config {
	c := &Config{}

	c.BaseURL = DefaultBaseURL
	c.UserAgent = DefaultUserAgent
	c.OutputDir = DefaultOutputDir
	c.Format = ""
	c.Subtitles = false

	c.Downloader.Name = "yt-dlp"
	c.Downloader.Path = ""
	c.Downloader.FormatFlag = "-f"
	c.Downloader.ShowWarnings = true
	c.Downloader.AutoUpdateCheck = false
	c.Downloader.ReleaseRepo = "yt-dlp/yt-dlp"

	c.ConfigVersion = CurrentConfigVersion

	c.normalizeConfig()
	return c
}

// Load lit la config YAML ; un fichier absent donne la configuration par défaut.
// Les champs absents du fichier conservent leur valeur par défaut.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// absence de config_version => fichier antérieur au versionnement
	cfg.ConfigVersion = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	return cfg, nil
}

// ApplyEnv surcharge la config avec les variables EDXDL_* non vides.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("variables d'environnement %s_* : %w", EnvPrefix, err)
	}
	if env.Username != "" {
		c.Username = env.Username
	}
	if env.Password != "" {
		c.Password = env.Password
	}
	if env.OutputDir != "" {
		c.OutputDir = env.OutputDir
	}
	if env.Format != "" {
		c.Format = env.Format
	}
	if env.BaseURL != "" {
		c.BaseURL = env.BaseURL
	}
	c.normalizeConfig()
	return nil
}

func (c *Config) normalizeConfig() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	c.OutputDir = filepath.Clean(c.OutputDir)

	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	c.Format = strings.TrimSpace(c.Format)
	c.Downloader.FormatFlag = strings.TrimSpace(c.Downloader.FormatFlag)
	if c.Downloader.FormatFlag == "" {
		c.Downloader.FormatFlag = "-f"
	}

	// centraliser la résolution/normalisation du downloader
	c.ResolveDownloaderPath()
}

// ResolveDownloaderPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.Downloader.Name ou cfg.Downloader.Path.
func (c *Config) ResolveDownloaderPath() {
	if c == nil {
		return
	}

	c.Downloader.Name = strings.TrimSpace(c.Downloader.Name)
	if c.Downloader.Name == "" {
		c.Downloader.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.Downloader.Name), ".exe") {
		c.Downloader.Name = c.Downloader.Name + ".exe"
	}

	// chemin vide -> recherche dans le PATH au moment de l'exécution
	exeName := c.Downloader.Name
	cfgPath := strings.TrimSpace(c.Downloader.Path)
	if cfgPath == "" {
		c.Downloader.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.Downloader.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.Downloader.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}

// FilePath retourne le chemin du fichier lu par Load ("" si aucun).
func (c *Config) FilePath() string {
	return c.configFilePath
}
