package subtitles

import (
	"bytes"
	"encoding/json"
	"io"
)

// ParseCaption parse un blob JSON ([]byte) et retourne le Caption validé.
//
// Utilise json.Decoder en lecture depuis un bytes.Reader quand les données sont
// déjà présentes en mémoire.
func ParseCaption(b []byte) (Caption, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Caption{}, &MalformedCaptionError{Reason: "document vide"}
	}
	return ParseCaptionReader(bytes.NewReader(b))
}

// ParseCaptionReader parse depuis un io.Reader.
// Ne pas appeler DisallowUnknownFields() : la plateforme ajoute parfois des champs.
func ParseCaptionReader(r io.Reader) (Caption, error) {
	var c Caption
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		// un start/end non numérique arrive ici (UnmarshalTypeError)
		return Caption{}, &MalformedCaptionError{Reason: "décodage JSON", Err: err}
	}
	if err := c.Validate(); err != nil {
		return Caption{}, err
	}
	return c, nil
}
