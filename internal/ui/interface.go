package ui

import (
	"context"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

// Interface regroupe les interactions avec l'utilisateur.
// Les méthodes bloquantes retournent ctx.Err() si le contexte est annulé (Ctrl+C).
type Interface interface {
	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// PromptCredentials demande l'identifiant puis le mot de passe (masqué si possible).
	PromptCredentials(ctx context.Context) (username, password string, err error)

	// ChooseCourse affiche le menu des cours et redemande jusqu'à un cours commencé valide.
	ChooseCourse(ctx context.Context, courses []model.Course) (model.Course, error)

	// ChooseWeeks affiche le menu des semaines (+ "toutes") et retourne les pages choisies.
	ChooseWeeks(ctx context.Context, course model.Course, weeks []model.Week) ([]string, error)

	// PromptFormat demande un code de format (vide => choix du downloader).
	PromptFormat(ctx context.Context) (string, error)

	// PromptSubtitles demande si les sous-titres doivent être téléchargés.
	PromptSubtitles(ctx context.Context) (bool, error)
}
