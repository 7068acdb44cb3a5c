package updater

import "testing"

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.7.0", "1.7.0"},
		{"1.7.0", "1.7.0"},
		{"  v2.0.1 ", "2.0.1"},
	}
	for _, tt := range tests {
		if got := normalizeTag(tt.in); got != tt.want {
			t.Errorf("normalizeTag(%q) = %q, attendu %q", tt.in, got, tt.want)
		}
	}
}

func TestGetUpdateLink(t *testing.T) {
	u := UpdateCheck{
		LatestRelease: &ReleaseInfo{
			HTMLURL: "https://example.com/releases/v2",
			Assets: []Asset{
				{Name: "limescribe_windows_amd64.exe", BrowserDownloadURL: "https://example.com/win"},
				{Name: "limescribe_linux_amd64", BrowserDownloadURL: "https://example.com/linux"},
			},
		},
	}

	if got := u.GetUpdateLink("windows"); got != "https://example.com/win" {
		t.Errorf("lien windows = %q", got)
	}
	if got := u.GetUpdateLink("linux"); got != "https://example.com/linux" {
		t.Errorf("lien linux = %q", got)
	}
	// pas d'asset correspondant -> page de la release
	if got := u.GetUpdateLink("darwin"); got != "https://example.com/releases/v2" {
		t.Errorf("fallback = %q", got)
	}

	var empty UpdateCheck
	if got := empty.GetUpdateLink("linux"); got != "" {
		t.Errorf("sans release = %q, attendu vide", got)
	}
}
