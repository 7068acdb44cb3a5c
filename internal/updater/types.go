package updater

import (
	"time"
)

// Asset représente un binaire attaché à une release.
type Asset struct {
	Name               string
	BrowserDownloadURL string
	ContentType        string
}

// ReleaseInfo contient les métadonnées de la dernière release publiée
// de l'application, assets compris.
type ReleaseInfo struct {
	TagName     string
	Name        string
	PublishedAt time.Time
	Body        string
	HTMLURL     string
	Assets      []Asset
}
