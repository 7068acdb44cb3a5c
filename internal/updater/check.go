package updater

import (
	"context"
	"fmt"
	"strings"
)

// UpdateCheck contient le résultat de la comparaison
type UpdateCheck struct {
	CurrentVersion string       // version compilée dans le binaire
	LatestRelease  *ReleaseInfo // info complète de la release distante
	IsUpToDate     bool         // true si les deux tags se valent
}

// CheckAppUpdate compare la version locale et la dernière release GitHub de
// l'application.
func CheckAppUpdate(ctx context.Context, localVer string) (*UpdateCheck, error) {
	latest, err := GetLatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("impossible de récupérer la release GitHub : %w", err)
	}

	isUpToDate := normalizeTag(localVer) == normalizeTag(latest.TagName)

	return &UpdateCheck{
		CurrentVersion: localVer,
		LatestRelease:  latest,
		IsUpToDate:     isUpToDate,
	}, nil
}

// GetUpdateLink retourne l'asset correspondant au système (ex "windows",
// "linux"), ou la page de la release si aucun asset ne correspond.
func (u UpdateCheck) GetUpdateLink(system string) string {
	if u.LatestRelease == nil {
		return ""
	}
	for _, a := range u.LatestRelease.Assets {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(system)) {
			return a.BrowserDownloadURL
		}
	}
	return u.LatestRelease.HTMLURL
}

// normalizeTag fait se valoir "v1.7.0" et "1.7.0"
func normalizeTag(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "v")
}
