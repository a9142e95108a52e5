package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateDownloaderPresence vérifie de manière statique que si un ResolvedPath est défini,
// le fichier existe et que le répertoire parent est accessible.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateDownloaderPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	c.ResolveDownloaderPath()

	p := strings.TrimSpace(c.Downloader.ResolvedPath)
	if p == "" {
		warnings = append(warnings, fmt.Sprintf("aucun chemin configuré pour %s ; recherche dans le PATH", c.Downloader.Name))
		return warnings, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du downloader n'existe pas : %s", parent))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin du downloader n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("%s introuvable à l'emplacement configuré : %s", c.Downloader.Name, p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour %s est un répertoire : %s", c.Downloader.Name, p)
	}

	return warnings, nil
}

// Validate contrôle les valeurs qui rendraient l'exécution impossible.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url invalide %q : schéma http(s) attendu", c.BaseURL)
	}
	if !strings.HasPrefix(c.Downloader.FormatFlag, "-") {
		return fmt.Errorf("downloader.format_flag invalide %q", c.Downloader.FormatFlag)
	}
	return nil
}
