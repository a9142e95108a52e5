package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/patrickprogramme/edxdl/pkg/model"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// toMillis arrondit à la microseconde puis tronque à la milliseconde.
func toMillis(v float64) model.Millis {
	micros := int64(math.Round(v * 1000))
	return model.Millis(micros / 1000)
}

// FormatTimestamp formate un décalage en "HH:MM:SS,mmm".
// Les heures ne reviennent pas à zéro après 24.
func FormatTimestamp(ms model.Millis) string {
	total := int64(ms)
	if total < 0 {
		total = 0
	}
	h := total / msPerHour
	m := (total % msPerHour) / msPerMinute
	s := (total % msPerMinute) / msPerSecond
	milli := total % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, milli)
}

// ToCues convertit le Caption en blocs numérotés.
// Les entrées au texte vide sont ignorées et ne consomment pas d'index.
func ToCues(c Caption) ([]model.Cue, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var cues []model.Cue
	for i, text := range c.Text {
		if text == "" {
			continue
		}
		cues = append(cues, model.Cue{
			Index:       len(cues) + 1,
			StartMillis: toMillis(c.Start[i]),
			EndMillis:   toMillis(c.End[i]),
			Text:        text,
		})
	}
	return cues, nil
}

// WriteCues sérialise les blocs au format SRT.
func WriteCues(cues []model.Cue) string {
	var b strings.Builder
	for _, cue := range cues {
		b.WriteString(strconv.Itoa(cue.Index))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(cue.StartMillis))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(cue.EndMillis))
		b.WriteString("\n")
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// ToSRT convertit directement le Caption en texte SRT.
func ToSRT(c Caption) (string, error) {
	cues, err := ToCues(c)
	if err != nil {
		return "", err
	}
	return WriteCues(cues), nil
}
