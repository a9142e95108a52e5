package model

// Millis est un alias explicite pour représenter un décalage en millisecondes.
type Millis int64

// constantes pour les formats de fichiers
type Format string

const (
	FormatSRT   Format = "srt"
	FormatSJSON Format = "srt.sjson" // format JSON des sous-titres servis par la plateforme
)

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
