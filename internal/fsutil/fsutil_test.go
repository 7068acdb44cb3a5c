package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Interview A", "Interview A"},
		{"timecode dans le nom", "synk 12:30", "synk 12-30"},
		{"caractères interdits", `a<b>c"d/e\f|g?h*i`, "a b c d e f g h i"},
		{"espaces multiples", "a    b", "a b"},
		{"points terminaux", "export...", "export"},
		{"vide", "", "untitled"},
		{"que des interdits", `///`, "untitled"},
		{"casse conservée", "interview a", "interview a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, attendu %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	if got := SanitizeFilename(long); len(got) != max {
		t.Errorf("len = %d, attendu %d", len(got), max)
	}
}

func TestSaveDocumentAtomic(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveDocumentAtomic(dir, "doc", ".inqscr", []byte("contenu"), false)
	if err != nil {
		t.Fatalf("SaveDocumentAtomic : %v", err)
	}
	if path != filepath.Join(dir, "doc.inqscr") {
		t.Errorf("chemin = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "contenu" {
		t.Errorf("contenu relu = %q, err = %v", data, err)
	}
}

func TestSaveDocumentAtomicCollisionSuffix(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveDocumentAtomic(dir, "doc", ".docx", []byte("un"), false)
	if err != nil {
		t.Fatalf("premier : %v", err)
	}
	second, err := SaveDocumentAtomic(dir, "doc", ".docx", []byte("deux"), false)
	if err != nil {
		t.Fatalf("second : %v", err)
	}
	if second == first {
		t.Fatalf("collision non gérée : %s", second)
	}
	if filepath.Base(second) != "doc_1.docx" {
		t.Errorf("nom = %s, attendu doc_1.docx", filepath.Base(second))
	}

	// le premier fichier n'a pas bougé
	data, _ := os.ReadFile(first)
	if string(data) != "un" {
		t.Errorf("le fichier original a été modifié : %q", data)
	}
}

func TestSaveDocumentAtomicOverwrite(t *testing.T) {
	dir := t.TempDir()

	if _, err := SaveDocumentAtomic(dir, "doc", ".docx", []byte("un"), true); err != nil {
		t.Fatalf("premier : %v", err)
	}
	path, err := SaveDocumentAtomic(dir, "doc", ".docx", []byte("deux"), true)
	if err != nil {
		t.Fatalf("second : %v", err)
	}
	if filepath.Base(path) != "doc.docx" {
		t.Errorf("overwrite a changé le nom : %s", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "deux" {
		t.Errorf("contenu = %q, attendu deux", data)
	}
}

func TestSaveDocumentAtomicBadExt(t *testing.T) {
	if _, err := SaveDocumentAtomic(t.TempDir(), "doc", "docx", nil, false); err == nil {
		t.Fatal("extension sans point aurait dû être refusée")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "sub", "f.yaml")

	if err := WriteFileAtomic(dest, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic : %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "a: 1\n" {
		t.Errorf("contenu relu = %q, err = %v", data, err)
	}

	// pas de résidu temporaire
	entries, _ := os.ReadDir(filepath.Join(dir, "sub"))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("fichier temporaire restant : %s", e.Name())
		}
	}
}
