// Package courseware lit le dashboard (liste des cours) et la page
// courseware d'un cours (liste des semaines et de leurs pages).
package courseware

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

const coursesPrefix = "/courses/"

// StructureError : la page courseware n'a pas la forme attendue.
// Fatal : sans cette structure aucune vidéo ne peut être trouvée.
type StructureError struct {
	Page   string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure %s non reconnue: %s", e.Page, e.Reason)
}

// ParseCourses extrait les cours du dashboard, dans l'ordre du document.
func ParseCourses(dashboardHTML, baseURL string) ([]model.Course, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dashboardHTML))
	if err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	var courses []model.Course
	doc.Find("article.course").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		id, state := courseIDAndState(href)
		courses = append(courses, model.Course{
			ID:    id,
			Name:  strings.TrimSpace(s.Find("h3").First().Text()),
			State: state,
			URL:   baseURL + href,
		})
	})
	return courses, nil
}

// courseIDAndState : un lien dont le dernier segment est "info" désigne un cours
// commencé, sinon le lien pointe vers la page "about".
// On retire des segments entiers, jamais des caractères isolés.
func courseIDAndState(href string) (string, model.CourseState) {
	id := strings.TrimPrefix(href, coursesPrefix)
	trimmed := strings.TrimSuffix(id, "/")

	last, rest, ok := cutLastSegment(trimmed)
	switch {
	case ok && last == "info":
		return rest, model.Started
	case ok && last == "about":
		return rest, model.NotStarted
	}
	return trimmed, model.NotStarted
}

// cutLastSegment sépare "a/b/c" en ("c", "a/b").
func cutLastSegment(p string) (last, rest string, ok bool) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return p, "", p != ""
	}
	return p[i+1:], p[:i], true
}

// ParseWeeks extrait les semaines de la page courseware.
// La navigation attendue est section.content-wrapper > section > div > div > nav,
// chaque div enfant de nav étant une semaine.
func ParseWeeks(coursewareHTML, baseURL string) ([]model.Week, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(coursewareHTML))
	if err != nil {
		return nil, fmt.Errorf("parse courseware: %w", err)
	}

	site, err := siteRoot(baseURL)
	if err != nil {
		return nil, err
	}

	nav := doc.Find("section.content-wrapper").First()
	for _, tag := range []string{"section", "div", "div", "nav"} {
		if nav.Length() == 0 {
			break
		}
		nav = nav.Find(tag).First()
	}
	if nav.Length() == 0 {
		return nil, &StructureError{Page: "courseware", Reason: "navigation introuvable dans section.content-wrapper"}
	}

	var weeks []model.Week
	nav.ChildrenFiltered("div").Each(func(i int, w *goquery.Selection) {
		week := model.Week{
			Label: strings.TrimSpace(w.Find("h3 a").First().Text()),
		}
		w.Find("ul a[href]").Each(func(j int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			week.PageURLs = append(week.PageURLs, resolve(site, href))
		})
		weeks = append(weeks, week)
	})
	return weeks, nil
}

// siteRoot retourne scheme://host de baseURL.
func siteRoot(baseURL string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q: scheme ou hôte manquant", baseURL)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}

// resolve préfixe href par scheme://host s'il est relatif.
func resolve(site *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return site.String() + href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	return site.ResolveReference(ref).String()
}

// CoursewareURL remplace le dernier segment "info" de l'URL du cours par "courseware".
func CoursewareURL(c model.Course) string {
	u := c.URL
	slash := strings.HasSuffix(u, "/")
	trimmed := strings.TrimSuffix(u, "/")
	if last, rest, ok := cutLastSegment(trimmed); ok && last == "info" {
		u = rest + "/courseware"
		if slash {
			u += "/"
		}
	}
	return u
}
