package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"exemple.yaml":     &fstest.MapFile{Data: []byte("cle: valeur\n")},
		"templates/a.tmpl": &fstest.MapFile{Data: []byte("contenu a")},
	}
}

func TestEnsureConfigPresent(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "config.yaml")

	if err := EnsureConfigPresent(dst, testFS(), "exemple.yaml"); err != nil {
		t.Fatalf("EnsureConfigPresent : %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "cle: valeur\n" {
		t.Fatalf("contenu = %q, err = %v", data, err)
	}

	// idempotent : un fichier existant n'est jamais remplacé
	if err := os.WriteFile(dst, []byte("modifié"), 0o644); err != nil {
		t.Fatalf("écriture : %v", err)
	}
	if err := EnsureConfigPresent(dst, testFS(), "exemple.yaml"); err != nil {
		t.Fatalf("second appel : %v", err)
	}
	data, _ = os.ReadFile(dst)
	if string(data) != "modifié" {
		t.Errorf("le fichier existant a été écrasé : %q", data)
	}
}

func TestEnsureTemplatesPresent(t *testing.T) {
	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates")
	src := []string{"templates/a.tmpl"}

	if err := EnsureTemplatesPresent(tplDir, testFS(), src); err != nil {
		t.Fatalf("EnsureTemplatesPresent : %v", err)
	}
	dest := filepath.Join(tplDir, "a.tmpl")
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "contenu a" {
		t.Fatalf("contenu = %q, err = %v", data, err)
	}

	// un template modifié par l'utilisateur reste intact
	if err := os.WriteFile(dest, []byte("local"), 0o644); err != nil {
		t.Fatalf("écriture : %v", err)
	}
	if err := EnsureTemplatesPresent(tplDir, testFS(), src); err != nil {
		t.Fatalf("second appel : %v", err)
	}
	data, _ = os.ReadFile(dest)
	if string(data) != "local" {
		t.Errorf("le template local a été écrasé : %q", data)
	}
}

func TestExportDefaults(t *testing.T) {
	dir := t.TempDir()

	status, err := ExportDefaults(testFS(), "templates", dir, false)
	if err != nil {
		t.Fatalf("ExportDefaults : %v", err)
	}
	if status["templates/a.tmpl"] != "written" {
		t.Errorf("status = %q, attendu written", status["templates/a.tmpl"])
	}

	// modifié localement, sans force -> conservé
	dest := filepath.Join(dir, "a.tmpl")
	if err := os.WriteFile(dest, []byte("local"), 0o644); err != nil {
		t.Fatalf("écriture : %v", err)
	}
	status, err = ExportDefaults(testFS(), "templates", dir, false)
	if err != nil {
		t.Fatalf("second appel : %v", err)
	}
	if status["templates/a.tmpl"] != "skipped (different)" {
		t.Errorf("status = %q, attendu skipped (different)", status["templates/a.tmpl"])
	}

	// avec force -> écrasé, avec sauvegarde
	status, err = ExportDefaults(testFS(), "templates", dir, true)
	if err != nil {
		t.Fatalf("force : %v", err)
	}
	if status["templates/a.tmpl"] != "overwritten" {
		t.Errorf("status = %q, attendu overwritten", status["templates/a.tmpl"])
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "contenu a" {
		t.Errorf("contenu après force = %q", data)
	}
	backups, _ := filepath.Glob(dest + ".bak.*")
	if len(backups) == 0 {
		t.Error("aucune sauvegarde créée avant écrasement")
	}
}
