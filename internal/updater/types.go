package updater

import (
	"time"
)

// Asset représente un exécutable publié pour un système donné.
type Asset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// ReleaseInfo contient les métadonnées de la release
// et les deux assets spécifiques à la mise à jour.
type ReleaseInfo struct {
	TagName        string
	Name           string
	PublishedAt    time.Time
	Body           string
	HTMLURL        string
	WindowsRelease Asset
	LinuxRelease   Asset
}

// rawRelease : réponse de GET /repos/{owner}/{repo}/releases/latest
type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}
