package yt

import (
	"fmt"
	"io"
)

// YtDlp représente la commande à exécuter (nom de binaire ou chemin) + options.
type YtDlp struct {
	Name   string
	Path   string // chemin vers l'exe ; vide => recherche de Name dans le PATH
	Config YtDlpConfig
	Stdout io.Writer // sortie relayée pendant le téléchargement
	Stderr io.Writer
}

func (y YtDlp) String() string {
	return fmt.Sprintf("%s (%s)", y.Name, y.exe())
}

// exe retourne le chemin configuré, sinon le nom (résolu via le PATH par os/exec).
func (y YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}
