package yt

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/edxdl/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp initialise le client, vérifie le binaire et récupère la version.
// Retourne le client (implémentant Interface) et la version.
func InitYtDlp(ctx context.Context, cfg *config.Config) (*YtDlp, string, error) {
	ytDlpcfg := NewYtDlpConfig(cfg.Downloader.ShowWarnings, cfg.Downloader.FormatFlag)
	dl := NewYtDlp(cfg.Downloader.Name, cfg.Downloader.ResolvedPath, *ytDlpcfg)

	// vérifier la présence du binaire
	if err := dl.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("downloader introuvable : %w", err)
	}

	// récupérer la version (avec timeout)
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version : %w", err)
	}

	return dl, version, nil
}
