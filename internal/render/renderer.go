// Package render charge et rend les templates texte de l'application.
// Les templates vivent à côté du binaire (dossier templates/), extraits des
// assets embarqués au premier lancement, et restent modifiables par
// l'utilisateur.
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"
)

// Renderer encapsule le chargement des templates (populate) + le rendu (render)
type Renderer struct {
	templates *template.Template
	fsys      fs.FS
	patterns  []string

	once sync.Once
	err  error
}

// NewRendererFromFS retourne un Renderer "paresseux" : le parsing réel est
// effectué au premier rendu (ou via ParseNow).
func NewRendererFromFS(fsys fs.FS, patterns []string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		patterns = []string{"*.tmpl"}
	}
	return &Renderer{fsys: fsys, patterns: patterns}, nil
}

// DefaultRenderer construit le renderer standard de l'application : les
// templates lus depuis <dossier du binaire>/templates.
func DefaultRenderer(exePath string) (*Renderer, error) {
	binDir := filepath.Dir(exePath)
	tplDir := filepath.Join(binDir, "templates")
	if _, err := os.Stat(tplDir); err != nil {
		return nil, fmt.Errorf("dossier de templates inaccessible (%s): %w", tplDir, err)
	}
	return NewRendererFromFS(os.DirFS(tplDir), []string{"*.tmpl"})
}

// parseTemplates fait le vrai travail ; appelé une seule fois via sync.Once.
func (r *Renderer) parseTemplates() error {
	root := template.New("root")

	parsed, err := root.ParseFS(r.fsys, r.patterns...)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.templates = parsed
	return nil
}

// ParseNow force le parsing immédiat (utile pour valider au démarrage)
func (r *Renderer) ParseNow() error {
	r.once.Do(func() { r.err = r.parseTemplates() })
	return r.err
}

// Render exécute le template nommé avec data et retourne le document généré.
func (r *Renderer) Render(tmplName string, data any) ([]byte, error) {
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	t := r.templates.Lookup(tmplName)
	if t == nil {
		return nil, fmt.Errorf("template introuvable: %s", tmplName)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("échec d'exécution du template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}
