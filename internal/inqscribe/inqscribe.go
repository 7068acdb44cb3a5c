// Package inqscribe prépare le contenu des fichiers projet InqScribe
// (.inqscr). Le format est une liste de paires clé=valeur en texte brut ;
// tout le transcript tient dans la seule valeur text=, sur une seule ligne
// physique.
package inqscribe

import (
	"strings"

	"github.com/patrickprogramme/limescribe/internal/transcript"
)

// TemplateName est le nom du template rendu pour produire le fichier.
const TemplateName = "transcript.inqscr.tmpl"

// entrySep précède chaque timecode dans la valeur text=. C'est la séquence
// littérale de quatre caractères \r\r, pas des retours chariot : InqScribe
// la réinterprète lui-même en sauts de ligne.
const entrySep = `\r\r`

// Valeurs par défaut de l'apparence, remplaçables par la config.
const (
	DefaultFontName = "Tahoma"
	DefaultFontSize = 12
)

// FileData alimente le template transcript.inqscr.tmpl.
type FileData struct {
	FontName string
	FontSize int
	FPS      int
	Text     string
}

// BuildText assemble la valeur text= : le titre du document d'abord, puis
// chaque ligne précédée de la séquence \r\r, le corps introduit par ": "
// quand il existe.
func BuildText(title string, lines []transcript.Line) string {
	var b strings.Builder
	b.WriteString(title)
	for _, l := range lines {
		b.WriteString(entrySep)
		b.WriteString(l.Heading)
		if l.Body != "" {
			b.WriteString(": ")
			b.WriteString(l.Body)
		}
	}
	return b.String()
}

// NewFileData construit le view model complet pour le template, en
// appliquant les valeurs par défaut d'apparence si besoin.
func NewFileData(title string, lines []transcript.Line, fontName string, fontSize, fps int) FileData {
	if strings.TrimSpace(fontName) == "" {
		fontName = DefaultFontName
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return FileData{
		FontName: fontName,
		FontSize: fontSize,
		FPS:      fps,
		Text:     BuildText(title, lines),
	}
}
