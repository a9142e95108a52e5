package fsutil

import "strings"

// DefaultDirName est utilisé quand le nettoyage ne laisse aucun caractère.
const DefaultDirName = "course_folder"

const allowedDirChars = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	" _."

// DirectoryName nettoie le nom d'un cours pour en faire un nom de dossier.
// Ne garde que les lettres et chiffres ASCII, l'espace, "_" et ".", dans l'ordre d'origine.
func DirectoryName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(allowedDirChars, r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultDirName
	}
	return b.String()
}
