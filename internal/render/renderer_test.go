package render

import (
	"testing"
	"testing/fstest"
)

func TestRenderByName(t *testing.T) {
	fsys := fstest.MapFS{
		"a.tmpl": &fstest.MapFile{Data: []byte("bonjour {{.Nom}}")},
		"b.tmpl": &fstest.MapFile{Data: []byte("autre")},
	}
	r, err := NewRendererFromFS(fsys, []string{"*.tmpl"})
	if err != nil {
		t.Fatalf("NewRendererFromFS : %v", err)
	}

	out, err := r.Render("a.tmpl", map[string]string{"Nom": "Maria"})
	if err != nil {
		t.Fatalf("Render : %v", err)
	}
	if string(out) != "bonjour Maria" {
		t.Errorf("Render = %q", out)
	}

	if _, err := r.Render("absent.tmpl", nil); err == nil {
		t.Error("Render sur un template inconnu aurait dû échouer")
	}
}

func TestParseNowReportsBrokenTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.tmpl": &fstest.MapFile{Data: []byte("{{.Ouvert")},
	}
	r, err := NewRendererFromFS(fsys, []string{"*.tmpl"})
	if err != nil {
		t.Fatalf("NewRendererFromFS : %v", err)
	}
	if err := r.ParseNow(); err == nil {
		t.Fatal("ParseNow aurait dû échouer sur un template cassé")
	}
	// l'erreur de parsing reste mémorisée pour les rendus suivants
	if _, err := r.Render("bad.tmpl", nil); err == nil {
		t.Fatal("Render aurait dû propager l'erreur de parsing")
	}
}

func TestNewRendererFromFSNil(t *testing.T) {
	if _, err := NewRendererFromFS(nil, nil); err == nil {
		t.Fatal("fsys nil aurait dû être refusé")
	}
}
