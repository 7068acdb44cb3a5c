// Package docx sérialise un document Word minimal (.docx) sans dépendre
// d'une suite bureautique. Un .docx est un zip de quelques parties XML ;
// seule word/document.xml varie selon le contenu, le reste du conteneur
// est constant.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/patrickprogramme/limescribe/internal/transcript"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/></Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

	// un seul style nommé : Title, pour la page de garde
	stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style></w:styles>`

	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Structures encoding/xml de word/document.xml. Les noms de balises portent
// le préfixe w: en dur : l'encodeur xml ne gère pas les espaces de noms
// préfixés, on écrit donc les noms qualifiés tels quels.
type wordDocument struct {
	XMLName xml.Name `xml:"w:document"`
	Xmlns   string   `xml:"xmlns:w,attr"`
	Body    wordBody `xml:"w:body"`
}

type wordBody struct {
	Paragraphs []paragraph `xml:"w:p"`
}

type paragraph struct {
	Props *paraProps `xml:"w:pPr,omitempty"`
	Runs  []run      `xml:"w:r,omitempty"`
}

type paraProps struct {
	Style   *attrVal `xml:"w:pStyle,omitempty"`
	Justify *attrVal `xml:"w:jc,omitempty"`
}

type attrVal struct {
	Val string `xml:"w:val,attr"`
}

type run struct {
	Props *runProps `xml:"w:rPr,omitempty"`
	Text  *runText  `xml:"w:t,omitempty"`
}

type runProps struct {
	Bold *struct{} `xml:"w:b,omitempty"`
}

type runText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

// Build sérialise l'artefact Word : un titre centré (style Title) suivi
// d'une ligne vide, puis pour chaque ligne un paragraphe d'en-tête en gras
// et le corps en dessous, avec un paragraphe vide entre les entrées (aucun
// après la dernière).
func Build(title string, lines []transcript.Line) ([]byte, error) {
	doc := wordDocument{Xmlns: wordNS, Body: buildBody(title, lines)}

	var docXML bytes.Buffer
	docXML.WriteString(xml.Header)
	if err := xml.NewEncoder(&docXML).Encode(doc); err != nil {
		return nil, fmt.Errorf("encodage document.xml : %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", docXML.Bytes()},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("entrée zip %s : %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("écriture %s : %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("fermeture zip : %w", err)
	}
	return buf.Bytes(), nil
}

func buildBody(title string, lines []transcript.Line) wordBody {
	var paras []paragraph

	paras = append(paras, paragraph{
		Props: &paraProps{
			Style:   &attrVal{Val: "Title"},
			Justify: &attrVal{Val: "center"},
		},
		Runs: []run{textRun(title, false)},
	})
	paras = append(paras, paragraph{}) // ligne vide sous le titre

	for i, l := range lines {
		paras = append(paras, paragraph{Runs: []run{textRun(l.Heading, true)}})
		if l.Body != "" {
			paras = append(paras, paragraph{Runs: []run{textRun(l.Body, false)}})
		}
		if i < len(lines)-1 {
			paras = append(paras, paragraph{}) // séparation entre entrées
		}
	}
	return wordBody{Paragraphs: paras}
}

// textRun construit un run de texte. xml:space="preserve" garde les espaces
// de tête et de fin, Word les éliderait sinon.
func textRun(s string, bold bool) run {
	r := run{Text: &runText{Space: "preserve", Value: s}}
	if bold {
		r.Props = &runProps{Bold: &struct{}{}}
	}
	return r
}
