package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickprogramme/limescribe/pkg/github"
)

// dépôt GitHub de l'application
const (
	repoOwner = "patrickprogramme"
	repoName  = "limescribe"
)

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// GetLatestRelease interroge GitHub pour la dernière release publiée de
// l'application.
func GetLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	data, err := github.FetchReleaseJSON(ctx, repoOwner, repoName)
	if err != nil {
		return nil, err
	}

	var raw rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}
	if raw.TagName == "" {
		return nil, fmt.Errorf("release sans tag_name")
	}

	info := &ReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		Body:        raw.Body,
		HTMLURL:     raw.HTMLURL,
	}
	for _, a := range raw.Assets {
		info.Assets = append(info.Assets, Asset{
			Name:               a.Name,
			BrowserDownloadURL: a.BrowserDownloadURL,
			ContentType:        a.ContentType,
		})
	}

	return info, nil
}
