package subtitles

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/patrickprogramme/edxdl/internal/fsutil"
	"github.com/patrickprogramme/edxdl/pkg/model"
)

// ignoredWhenLocating : fichiers qui partagent le préfixe mais ne sont pas la vidéo.
var ignoredWhenLocating = []string{model.FormatSRT.Extension(), ".part", ".ytdl", ".vtt"}

// Getter est la seule capacité réseau dont on a besoin (fetch.Client l'implémente).
type Getter interface {
	Bytes(ctx context.Context, rawURL string) ([]byte, error)
}

// Download télécharge le document de sous-titres et le convertit en SRT.
func Download(ctx context.Context, g Getter, rawURL string) (string, error) {
	data, err := g.Bytes(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("download subtitle: %w", err)
	}
	c, err := ParseCaption(data)
	if err != nil {
		return "", err
	}
	return ToSRT(c)
}

// SRTPath retourne le chemin du .srt d'une vidéo : même nom que le fichier
// vidéo téléchargé (retrouvé par son préfixe de séquence), ou "<préfixe>.srt"
// si la vidéo est introuvable.
func SRTPath(targetDir string, ref model.VideoRef) (string, error) {
	name, err := fsutil.FindByPrefix(targetDir, ref.Prefix()+"-", ignoredWhenLocating...)
	if err != nil {
		return "", err
	}
	base := ref.Prefix()
	if name != "" {
		base = fsutil.TrimExt(name)
	}
	return filepath.Join(targetDir, base+model.FormatSRT.Extension()), nil
}

// WriteForVideo écrit le .srt de ref dans targetDir s'il n'existe pas déjà.
// written=false sans erreur quand le fichier était déjà présent (relance idempotente).
func WriteForVideo(ctx context.Context, g Getter, ref model.VideoRef, targetDir string) (path string, written bool, err error) {
	if !ref.HasSubtitles() {
		return "", false, ErrNoSubtitle
	}
	if path, err = SRTPath(targetDir, ref); err != nil {
		return "", false, err
	}
	exists, err := fsutil.Exists(path)
	if err != nil {
		return path, false, err
	}
	if exists {
		return path, false, nil
	}

	srt, err := Download(ctx, g, ref.SubtitleURL)
	if err != nil {
		return path, false, err
	}
	// aucun bloc à écrire
	if srt == "" {
		return path, false, nil
	}
	written, err = fsutil.WriteFileIfAbsent(path, []byte(srt), 0o644)
	if err != nil {
		return path, false, fmt.Errorf("write subtitle %s: %w", path, err)
	}
	return path, written, nil
}
