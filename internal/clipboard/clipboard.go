package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}

// Unsupported indique qu'aucun outil de presse-papier n'est disponible (xclip, xsel...).
func Unsupported() bool {
	return clipboard.Unsupported
}

// CourseURL retourne l'URL de cours présente dans le presse-papier, ou "".
// Les erreurs de lecture sont ignorées : le presse-papier n'est qu'une suggestion.
func CourseURL() string {
	if Unsupported() {
		return ""
	}
	text, err := ReadAll()
	if err != nil {
		return ""
	}
	return MatchCourseURL(text)
}

// MatchCourseURL retourne text nettoyé s'il ressemble à une URL de cours, sinon "".
func MatchCourseURL(text string) string {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\ufeff"))
	if strings.ContainsAny(text, " \n\t") {
		return ""
	}
	if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
		return ""
	}
	if !strings.Contains(text, "/courses/") {
		return ""
	}
	return text
}
