package courseware

import (
	"fmt"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

// InvalidSelectionError : cours hors de la liste de l'utilisateur ou choix de menu invalide.
type InvalidSelectionError struct {
	Choice string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("sélection invalide (%s): %s", e.Choice, e.Reason)
}

// SelectByURL retrouve le cours dont l'URL est exactement courseURL.
func SelectByURL(courses []model.Course, courseURL string) (model.Course, error) {
	for _, c := range courses {
		if c.URL == courseURL {
			return c, nil
		}
	}
	return model.Course{}, &InvalidSelectionError{
		Choice: courseURL,
		Reason: "URL de cours invalide, ou utilisateur non inscrit",
	}
}

// SelectByNumber retourne le cours n (1-based), qui doit avoir commencé.
func SelectByNumber(courses []model.Course, n int) (model.Course, error) {
	if n < 1 || n > len(courses) {
		return model.Course{}, &InvalidSelectionError{
			Choice: fmt.Sprint(n),
			Reason: fmt.Sprintf("choisir un numéro entre 1 et %d", len(courses)),
		}
	}
	c := courses[n-1]
	if c.State != model.Started {
		return model.Course{}, &InvalidSelectionError{
			Choice: fmt.Sprint(n),
			Reason: fmt.Sprintf("le cours %q n'a pas commencé", c.Name),
		}
	}
	return c, nil
}

// SelectWeeks retourne les pages de la semaine choice (1-based) ;
// choice == len(weeks)+1 retourne toutes les pages, dans l'ordre.
func SelectWeeks(weeks []model.Week, choice int) ([]string, error) {
	switch {
	case choice >= 1 && choice <= len(weeks):
		return append([]string(nil), weeks[choice-1].PageURLs...), nil
	case choice == len(weeks)+1:
		return AllPages(weeks), nil
	default:
		return nil, &InvalidSelectionError{
			Choice: fmt.Sprint(choice),
			Reason: fmt.Sprintf("choisir un numéro entre 1 et %d", len(weeks)+1),
		}
	}
}

// AllPages aplatit les pages de toutes les semaines en conservant l'ordre.
func AllPages(weeks []model.Week) []string {
	var links []string
	for _, w := range weeks {
		links = append(links, w.PageURLs...)
	}
	return links
}
