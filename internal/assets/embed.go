package assets

import "embed"

//go:embed limescribe.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "limescribe.example.yaml"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
// Ce sont des chemins relatifs DANS Embedded (ex: "templates/transcript.inqscr.tmpl").
var DefaultTemplatePaths = []string{
	"templates/transcript.inqscr.tmpl",
}
