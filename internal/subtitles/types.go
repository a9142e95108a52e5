package subtitles

import (
	"errors"
	"fmt"
	"math"
)

// maxOffset borne les décalages (ms) : v*1000 doit tenir dans un int64.
const maxOffset = 1e15

var ErrNoSubtitle = errors.New("no subtitle available for this video")

// MalformedCaptionError : le document de sous-titres n'a pas la forme attendue.
// Non fatal : on saute ce fichier de sous-titres.
type MalformedCaptionError struct {
	Reason string
	Err    error
}

func (e *MalformedCaptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("caption malformé: %s: %v", e.Reason, e.Err)
	}
	return "caption malformé: " + e.Reason
}

func (e *MalformedCaptionError) Unwrap() error { return e.Err }

// Caption représente le JSON servi par la plateforme (.srt.sjson) :
// trois tableaux parallèles, appariés par position.
// start/end sont des décalages en millisecondes.
type Caption struct {
	Start []float64 `json:"start"`
	End   []float64 `json:"end"`
	Text  []string  `json:"text"`
}

// Len retourne le nombre d'entrées (après validation les trois tableaux ont la même longueur).
func (c Caption) Len() int {
	return len(c.Text)
}

// Validate vérifie que les trois tableaux ont la même longueur et des décalages
// finis, positifs et inférieurs à maxOffset.
func (c Caption) Validate() error {
	if len(c.Start) != len(c.End) || len(c.Start) != len(c.Text) {
		return &MalformedCaptionError{
			Reason: fmt.Sprintf("longueurs différentes: start=%d end=%d text=%d", len(c.Start), len(c.End), len(c.Text)),
		}
	}
	for i := range c.Start {
		for _, v := range [2]float64{c.Start[i], c.End[i]} {
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				return &MalformedCaptionError{Reason: fmt.Sprintf("décalage non fini à l'index %d", i)}
			case v < 0:
				return &MalformedCaptionError{Reason: fmt.Sprintf("décalage négatif à l'index %d", i)}
			case v > maxOffset:
				return &MalformedCaptionError{Reason: fmt.Sprintf("décalage hors limites à l'index %d", i)}
			}
		}
	}
	return nil
}
