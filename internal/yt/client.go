package yt

import "context"

// Interface est l'abstraction du downloader externe utilisée par l'application.
// Elle facilite le test en autorisant une implémentation factice.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	// ListFormats affiche les formats disponibles pour url (mode interactif).
	ListFormats(ctx context.Context, url string) error
	// Download télécharge une vidéo ; la sortie du binaire est relayée au terminal.
	Download(ctx context.Context, req Request) error
}
