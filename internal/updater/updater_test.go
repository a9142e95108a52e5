package updater

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const releaseJSON = `{
  "tag_name": "2024.04.09",
  "name": "yt-dlp 2024.04.09",
  "published_at": "2024-04-09T10:00:00Z",
  "html_url": "https://github.com/yt-dlp/yt-dlp/releases/tag/2024.04.09",
  "assets": [
    {"name": "yt-dlp", "browser_download_url": "https://dl.example/yt-dlp", "content_type": "application/octet-stream"},
    {"name": "yt-dlp.exe", "browser_download_url": "https://dl.example/yt-dlp.exe", "content_type": "application/octet-stream"},
    {"name": "yt-dlp.tar.gz", "browser_download_url": "https://dl.example/src", "content_type": "application/gzip"}
  ]
}`

func newReleaseServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/yt-dlp/yt-dlp/releases/latest" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, releaseJSON)
	}))
	t.Cleanup(srv.Close)
	return srv, &gotUA
}

func TestLatestRelease(t *testing.T) {
	srv, ua := newReleaseServer(t)
	c := NewChecker(srv.Client())
	c.APIBase = srv.URL

	info, err := c.LatestRelease(context.Background(), "yt-dlp/yt-dlp", "yt-dlp.exe")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
	if info.TagName != "2024.04.09" {
		t.Errorf("TagName = %q", info.TagName)
	}
	if info.LinuxRelease.BrowserDownloadURL != "https://dl.example/yt-dlp" {
		t.Errorf("linux asset = %+v", info.LinuxRelease)
	}
	if info.WindowsRelease.BrowserDownloadURL != "https://dl.example/yt-dlp.exe" {
		t.Errorf("windows asset = %+v", info.WindowsRelease)
	}
	if *ua != defaultUserAgent {
		t.Errorf("User-Agent = %q", *ua)
	}
}

func TestLatestRelease_Errors(t *testing.T) {
	srv, _ := newReleaseServer(t)
	c := NewChecker(srv.Client())
	c.APIBase = srv.URL

	for _, repo := range []string{"", "yt-dlp", "a/b/c", "other/repo"} {
		if _, err := c.LatestRelease(context.Background(), repo, "yt-dlp"); err == nil {
			t.Errorf("LatestRelease(%q): expected error", repo)
		}
	}
}

func TestCheck(t *testing.T) {
	srv, _ := newReleaseServer(t)
	c := NewChecker(srv.Client())
	c.APIBase = srv.URL

	tests := []struct {
		local    string
		upToDate bool
	}{
		{"2024.04.09", true},
		{"v2024.04.09\n", true},
		{"2023.12.30", false},
	}
	for _, tc := range tests {
		check, err := c.Check(context.Background(), "yt-dlp/yt-dlp", "yt-dlp", tc.local)
		if err != nil {
			t.Fatalf("Check(%q): %v", tc.local, err)
		}
		if check.IsUpToDate != tc.upToDate {
			t.Errorf("Check(%q).IsUpToDate = %v", tc.local, check.IsUpToDate)
		}
	}
}

func TestGetUpdateLink(t *testing.T) {
	u := UpdateCheck{LatestRelease: &ReleaseInfo{
		HTMLURL:      "https://github.com/o/r/releases/tag/1",
		LinuxRelease: Asset{BrowserDownloadURL: "https://dl.example/bin"},
	}}
	if got := u.GetUpdateLink("linux"); got != "https://dl.example/bin" {
		t.Errorf("linux link = %q", got)
	}
	// pas d'asset Windows : repli sur la page de release
	if got := u.GetUpdateLink("windows"); got != "https://github.com/o/r/releases/tag/1" {
		t.Errorf("windows link = %q", got)
	}
}
