package updater

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/patrickprogramme/edxdl/internal/fetch"
)

const (
	DefaultAPIBase   = "https://api.github.com"
	defaultUserAgent = "github-fetcher"
)

// Checker interroge l'API GitHub des releases.
type Checker struct {
	Client  *fetch.Client
	APIBase string // vide => DefaultAPIBase
}

// NewChecker construit un Checker sur httpClient (nil => http.DefaultClient).
func NewChecker(httpClient *http.Client) *Checker {
	h := http.Header{}
	h.Set("User-Agent", defaultUserAgent)
	h.Set("Accept", "application/vnd.github+json")
	return &Checker{Client: fetch.New(httpClient, h)}
}

// LatestRelease récupère la dernière release de repo ("owner/name").
// binary est le nom de l'exécutable publié (ex: "yt-dlp"), la variante ".exe" est
// retenue pour Windows.
func (c *Checker) LatestRelease(ctx context.Context, repo, binary string) (*ReleaseInfo, error) {
	owner, name, ok := strings.Cut(strings.Trim(repo, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("dépôt GitHub invalide %q : owner/name attendu", repo)
	}

	base := c.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(base, "/"), owner, name)

	raw, err := fetch.FetchJSON[rawRelease](ctx, c.Client, url)
	if err != nil {
		return nil, fmt.Errorf("requête GitHub: %w", err)
	}

	info := &ReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		Body:        raw.Body,
		HTMLURL:     raw.HTMLURL,
	}

	binary = strings.TrimSuffix(binary, ".exe")
	for _, a := range raw.Assets {
		switch a.Name {
		case binary + ".exe":
			info.WindowsRelease = Asset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case binary:
			info.LinuxRelease = Asset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.TagName == "" {
		return nil, fmt.Errorf("release sans tag_name pour %s", repo)
	}
	return info, nil
}
