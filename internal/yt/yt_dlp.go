package yt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// NewYtDlp construit une instance. resolvedPath peut être vide (recherche dans le PATH).
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// CheckBinary vérifie que le binaire existe : chemin configuré, sinon recherche dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("downloader non initialisé")
	}

	if y.Path == "" {
		if _, err := exec.LookPath(y.Name); err != nil {
			return fmt.Errorf("%s introuvable dans le PATH : %w", y.Name, err)
		}
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("downloader introuvable (%s) à l'emplacement spécifié : %w", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour le downloader est un répertoire, pas un fichier exécutable")
	}
	return nil
}

// ListFormats exécute `<downloader> -F <url>` en relayant la sortie.
func (y *YtDlp) ListFormats(ctx context.Context, url string) error {
	return y.run(ctx, "-F", url)
}

// Download exécute le downloader pour req. La sortie est relayée au fil de l'eau ;
// un code de sortie non nul est retourné comme erreur.
func (y *YtDlp) Download(ctx context.Context, req Request) error {
	if req.URL == "" {
		return fmt.Errorf("download: url vide")
	}
	return y.run(ctx, y.Config.BuildArgs(req)...)
}

func (y *YtDlp) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, y.exe(), args...)
	cmd.Stdout = writerOr(y.Stdout, os.Stdout)
	cmd.Stderr = writerOr(y.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %v: %w", y.exe(), args, err)
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
