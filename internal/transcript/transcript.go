// Package transcript charge les exports CSV de Limecraft et les normalise
// en une séquence d'enregistrements horodatés. Deux dispositions de fichier
// existent dans la nature : des colonnes nommées classiques, ou tout le
// contenu entassé dans une seule cellule par ligne. Les deux aboutissent au
// même Document.
package transcript

import (
	"github.com/patrickprogramme/limescribe/pkg/timecode"
)

// Record est une ligne de transcription normalisée.
type Record struct {
	Start   timecode.Timecode
	Speaker string // vide si la colonne est absente ou la cellule vide
	Text    string
}

// Document est le résultat d'un chargement : les enregistrements dans
// l'ordre du fichier (doublons compris), plus le marqueur de début.
// Start vaut zéro après le chargement et prend la valeur du décalage après
// ApplyOffset ; ce n'est pas un enregistrement, les émetteurs le rendent
// comme première ligne sans texte.
type Document struct {
	Start   timecode.Timecode
	Records []Record
}

// RenderOptions paramètre la projection commune aux deux émetteurs.
type RenderOptions struct {
	Title       string
	PrefixTitle bool // préfixe chaque timecode de "(Title) "
}

// Line est une entrée de la projection : un en-tête (le timecode, encadré,
// éventuellement préfixé du titre) et un corps ("Locuteur: texte" ou juste
// le texte).
type Line struct {
	Heading string
	Body    string
}

// Lines construit la projection du document : le marqueur de début d'abord
// (corps vide), puis une ligne par enregistrement. Les deux artefacts de
// sortie consomment cette même séquence et ne peuvent donc pas diverger sur
// le contenu.
func (d Document) Lines(opts RenderOptions) []Line {
	out := make([]Line, 0, len(d.Records)+1)
	out = append(out, Line{Heading: heading(d.Start, opts)})
	for _, r := range d.Records {
		body := r.Text
		if r.Speaker != "" {
			body = r.Speaker + ": " + r.Text
		}
		out = append(out, Line{Heading: heading(r.Start, opts), Body: body})
	}
	return out
}

func heading(tc timecode.Timecode, opts RenderOptions) string {
	if opts.PrefixTitle && opts.Title != "" {
		return "(" + opts.Title + ") " + tc.Bracketed()
	}
	return tc.Bracketed()
}
