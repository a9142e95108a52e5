package updater

import (
	"context"
	"fmt"
	"strings"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string       // version récupérée localement
	LatestRelease  *ReleaseInfo // info complète de la release distante
	IsUpToDate     bool         // true si CurrentVersion == LatestRelease.TagName
}

// Check compare la version locale du binaire et la dernière release GitHub.
func (c *Checker) Check(ctx context.Context, repo, binary, localVer string) (*UpdateCheck, error) {
	latest, err := c.LatestRelease(ctx, repo, binary)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}

	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     sameVersion(localVer, latest.TagName),
	}, nil
}

func sameVersion(a, b string) bool {
	norm := func(s string) string {
		return strings.TrimPrefix(strings.TrimSpace(s), "v")
	}
	return norm(a) == norm(b)
}

// GetUpdateLink retourne l'asset du système, sinon la page de la release.
func (u UpdateCheck) GetUpdateLink(system string) string {
	asset := u.LatestRelease.LinuxRelease
	if system == "windows" {
		asset = u.LatestRelease.WindowsRelease
	}
	if asset.BrowserDownloadURL != "" {
		return asset.BrowserDownloadURL
	}
	return u.LatestRelease.HTMLURL
}
