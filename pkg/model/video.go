package model

import "fmt"

// VideoIDLength est la longueur d'un identifiant vidéo YouTube.
const VideoIDLength = 11

const watchURLPrefix = "http://youtube.com/watch?v="

// VideoRef décrit une vidéo à télécharger.
// Sequence est l'index global (1-based) sur toute la sélection :
// c'est la seule clé qui relie ensuite la vidéo à son fichier sur disque.
type VideoRef struct {
	Sequence    int
	VideoID     string
	SubtitleURL string // vide => pas de sous-titres (cas des vidéos embarquées)
}

// WatchURL retourne l'URL lisible par le downloader.
func (v VideoRef) WatchURL() string {
	return watchURLPrefix + v.VideoID
}

// Prefix retourne le préfixe de fichier sur 2 chiffres minimum ("01", "12", "123").
func (v VideoRef) Prefix() string {
	return fmt.Sprintf("%02d", v.Sequence)
}

func (v VideoRef) HasSubtitles() bool {
	return v.SubtitleURL != ""
}

func (v VideoRef) String() string {
	return fmt.Sprintf("VideoRef(seq=%d, id=%s, subs=%t)", v.Sequence, v.VideoID, v.HasSubtitles())
}

// Cue est un bloc de sous-titre horodaté.
type Cue struct {
	Index       int
	StartMillis Millis
	EndMillis   Millis
	Text        string
}
