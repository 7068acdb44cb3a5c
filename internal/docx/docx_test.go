package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/patrickprogramme/limescribe/internal/transcript"
)

func buildAndOpen(t *testing.T, title string, lines []transcript.Line) map[string]string {
	t.Helper()
	data, err := Build(title, lines)
	if err != nil {
		t.Fatalf("Build : %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("l'artefact n'est pas un zip valide : %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("ouverture de %s : %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("lecture de %s : %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func TestBuildContainerParts(t *testing.T) {
	parts := buildAndOpen(t, "Interview A", []transcript.Line{{Heading: "[00:00:00.00]"}})

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/document.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("partie manquante dans le conteneur : %s", name)
		}
	}
	if !strings.Contains(parts["word/styles.xml"], `w:styleId="Title"`) {
		t.Error("styles.xml ne définit pas le style Title")
	}
}

func TestBuildDocumentLayout(t *testing.T) {
	lines := []transcript.Line{
		{Heading: "[01:54:18.03]"},
		{Heading: "[01:57:33.11]", Body: "Maria: Det är en fin dag."},
		{Heading: "[01:57:51.13]", Body: "DJ: Håller med."},
	}
	parts := buildAndOpen(t, "Interview A", lines)
	doc := parts["word/document.xml"]

	// titre centré en style Title
	if !strings.Contains(doc, `<w:pStyle w:val="Title">`) {
		t.Error("paragraphe de titre sans style Title")
	}
	if !strings.Contains(doc, `<w:jc w:val="center">`) {
		t.Error("paragraphe de titre non centré")
	}
	if !strings.Contains(doc, `>Interview A</w:t>`) {
		t.Error("titre absent du document")
	}

	// les en-têtes sont en gras, les corps non
	boldHeading := `<w:rPr><w:b></w:b></w:rPr><w:t xml:space="preserve">[01:57:33.11]</w:t>`
	if !strings.Contains(doc, boldHeading) {
		t.Errorf("en-tête en gras introuvable :\n%s", doc)
	}
	if !strings.Contains(doc, `<w:t xml:space="preserve">Maria: Det är en fin dag.</w:t>`) {
		t.Error("corps de la première entrée introuvable")
	}
	if strings.Contains(doc, `<w:b></w:b></w:rPr><w:t xml:space="preserve">Maria`) {
		t.Error("le corps ne doit pas être en gras")
	}

	// titre + ligne vide + (marqueur, sep) + (en-tête, corps, sep) + (en-tête, corps)
	if got := strings.Count(doc, "<w:p>"); got != 9 {
		t.Errorf("nombre de paragraphes = %d, attendu 9", got)
	}

	// le marqueur est la première entrée, sans paragraphe de corps
	marker := strings.Index(doc, "[01:54:18.03]")
	first := strings.Index(doc, "[01:57:33.11]")
	if marker < 0 || first < 0 || marker > first {
		t.Error("le marqueur de début doit précéder la première entrée")
	}
}

func TestBuildEscapesXML(t *testing.T) {
	lines := []transcript.Line{
		{Heading: "[00:00:01.00]", Body: "Q&A <redux>"},
	}
	parts := buildAndOpen(t, "Pilote", lines)
	doc := parts["word/document.xml"]

	if !strings.Contains(doc, "Q&amp;A &lt;redux&gt;") {
		t.Errorf("texte non échappé :\n%s", doc)
	}
}

func TestBuildNoTrailingSeparator(t *testing.T) {
	lines := []transcript.Line{
		{Heading: "[00:00:00.00]"},
		{Heading: "[00:00:05.00]", Body: "fin"},
	}
	parts := buildAndOpen(t, "X", lines)
	doc := parts["word/document.xml"]

	// titre + vide + marqueur + sep + en-tête + corps = 6, pas de vide final
	if got := strings.Count(doc, "<w:p>"); got != 6 {
		t.Errorf("nombre de paragraphes = %d, attendu 6", got)
	}
	if strings.HasSuffix(doc, "<w:p></w:p></w:body></w:document>") {
		t.Error("paragraphe vide superflu en fin de document")
	}
}
