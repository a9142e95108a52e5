package yt

import "path/filepath"

// DefaultFormatFlag : option de sélection de format (youtube-dl utilisait --max-quality).
const DefaultFormatFlag = "-f"

// YtDlpConfig représente les flags ajoutables quand on utilise le downloader
type YtDlpConfig struct {
	NoWarnings bool   // true => ajouter --no-warnings
	NoConfig   bool   // true => ajouter --no-config pour ignorer les configs utilisateur
	FormatFlag string // ex: "-f" ou "--max-quality"
}

// NewYtDlpConfig initialise une configuration standard, showWarning et formatFlag viennent du yaml de config
func NewYtDlpConfig(showWarning bool, formatFlag string) *YtDlpConfig {
	if formatFlag == "" {
		formatFlag = DefaultFormatFlag
	}
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		NoConfig:   false, // l'utilisateur peut vouloir garder sa config yt-dlp (proxy, cookies...)
		FormatFlag: formatFlag,
	}
}

// Request décrit un téléchargement.
type Request struct {
	URL            string // ex: http://youtube.com/watch?v=<id>
	OutputTemplate string // ex: Downloaded/Course/01-%(title)s.%(ext)s
	Format         string // optionnel
	WriteSubs      bool   // demande aussi les sous-titres du downloader
}

// OutputTemplate construit le modèle de nom de fichier préfixé par la séquence.
func OutputTemplate(targetDir, prefix string) string {
	return filepath.Join(targetDir, prefix+"-%(title)s.%(ext)s")
}

// BuildArgs construit une slice des arguments à passer au downloader.
func (c *YtDlpConfig) BuildArgs(req Request) []string {
	args := make([]string, 0, 8)
	// mettre --no-config en tête pour éviter que des configs locales modifient le comportement
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	args = append(args, "-o", req.OutputTemplate)
	if req.Format != "" {
		flag := c.FormatFlag
		if flag == "" {
			flag = DefaultFormatFlag
		}
		args = append(args, flag, req.Format)
	}
	if req.WriteSubs {
		args = append(args, "--write-sub")
	}
	args = append(args, req.URL)
	return args
}
