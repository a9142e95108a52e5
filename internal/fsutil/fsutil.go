package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exists indique si path existe (fichier ou dossier).
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindByPrefix retourne le nom (sans chemin) du premier fichier de dir dont le nom
// commence par prefix, en ignorant les fichiers d'extension ignoredExts.
// Renvoie "" si aucun fichier ne correspond ou si dir n'existe pas.
// La recherche n'est pas récursive.
func FindByPrefix(dir, prefix string, ignoredExts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	// ordre stable, indépendant du système de fichiers
	sort.Strings(names)

next:
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, ext := range ignoredExts {
			if strings.HasSuffix(name, ext) {
				continue next
			}
		}
		return name, nil
	}
	return "", nil
}

// TrimExt retourne name sans sa dernière extension.
func TrimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture dans
// un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire.
//
// destPath : chemin complet vers le fichier cible.
// data : contenu à écrire.
// perm : permissions POSIX (ex: 0o644).
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	// repertoire parent existe ?
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	// creation fichier temp
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// cleanup si échec
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : garantit que les données sont sur disque et pas juste en cache
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// WriteFileIfAbsent écrit data dans destPath seulement si le fichier n'existe pas.
// Retourne written=false (sans erreur) si le fichier était déjà là.
func WriteFileIfAbsent(destPath string, data []byte, perm os.FileMode) (written bool, err error) {
	exists, err := Exists(destPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", destPath, err)
	}
	if exists {
		return false, nil
	}
	if err := WriteFileAtomic(destPath, data, perm); err != nil {
		return false, err
	}
	return true, nil
}
