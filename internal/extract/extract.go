// Package extract retrouve les vidéos d'une page de semaine.
//
// Les identifiants sont dans des attributs data-* et des scripts, pas dans
// du balisage sémantique : on travaille donc sur le texte brut de la page.
package extract

import (
	"regexp"
	"strings"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

var (
	// marqueur qui précède la liste des vitesses de lecture ; l'id YouTube suit "1.0:"
	streamsSplitter = regexp.MustCompile(`data-streams=(?:&#34;|").*1\.0[0]*:`)
	// chemin de base des sous-titres, guillemet littéral ou encodé en entité HTML
	captionAssetPath = regexp.MustCompile(`data-caption-asset-path=(?:&#34;|")([^"&]*)(?:&#34;|")`)
	// vidéos YouTube intégrées via iframe
	youtubeEmbed = regexp.MustCompile(`//(?:www\.)?youtube\.com/embed/([^ ?&]*)[?& ]`)
)

// Extractor isole la stratégie de repérage pour pouvoir la remplacer sans toucher aux appelants.
type Extractor interface {
	Extract(page, baseURL string) []model.VideoRef
}

// Regexp est l'Extractor par défaut, basé sur des expressions régulières.
type Regexp struct{}

func (Regexp) Extract(page, baseURL string) []model.VideoRef {
	return ExtractVideos(page, baseURL)
}

// ExtractVideos retourne les vidéos de la page : d'abord les vidéos natives
// dans l'ordre des marqueurs, puis les vidéos intégrées.
// Sequence n'est pas renseigné, voir Number.
func ExtractVideos(page, baseURL string) []model.VideoRef {
	refs := nativeVideos(page, baseURL)
	return append(refs, embeddedVideos(page)...)
}

func nativeVideos(page, baseURL string) []model.VideoRef {
	fragments := streamsSplitter.Split(page, -1)
	if len(fragments) < 2 {
		return nil
	}

	var refs []model.VideoRef
	for _, frag := range fragments[1:] {
		id := truncateID(frag)
		if id == "" {
			continue
		}
		refs = append(refs, model.VideoRef{
			VideoID:     id,
			SubtitleURL: subtitleURL(frag, baseURL, id),
		})
	}
	return refs
}

// subtitleURL retourne "" si le fragment n'annonce pas de chemin de sous-titres.
func subtitleURL(fragment, baseURL, id string) string {
	m := captionAssetPath.FindStringSubmatch(fragment)
	if len(m) < 2 || m[1] == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + m[1] + id + model.FormatSJSON.Extension()
}

func embeddedVideos(page string) []model.VideoRef {
	var refs []model.VideoRef
	for _, m := range youtubeEmbed.FindAllStringSubmatch(page, -1) {
		id := truncateID(m[1])
		if id == "" {
			continue
		}
		refs = append(refs, model.VideoRef{VideoID: id})
	}
	return refs
}

// truncateID garde au plus VideoIDLength caractères.
func truncateID(s string) string {
	if len(s) > model.VideoIDLength {
		return s[:model.VideoIDLength]
	}
	return s
}

// Number attribue l'index global (1-based) aux vidéos, dans l'ordre donné.
func Number(refs []model.VideoRef) []model.VideoRef {
	out := make([]model.VideoRef, len(refs))
	for i, r := range refs {
		r.Sequence = i + 1
		out[i] = r
	}
	return out
}

// Collect concatène les vidéos de plusieurs pages (dans l'ordre des pages) et les numérote.
func Collect(pages ...[]model.VideoRef) []model.VideoRef {
	var all []model.VideoRef
	for _, p := range pages {
		all = append(all, p...)
	}
	return Number(all)
}
