// Package timecode fournit la valeur de base de l'application : un point
// dans le temps exprimé en heures, minutes, secondes et frames à une
// cadence fixe. Les exports Limecraft écrivent ces valeurs sous plusieurs
// formes textuelles ; ici on les normalise toutes vers une forme canonique
// unique et on fait l'arithmétique au niveau frame.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Rate est une cadence d'images (frames par seconde).
type Rate int

// DefaultRate est la cadence des exports Limecraft (30 fps).
// Les frames valides vont donc de 0 à 29.
const DefaultRate Rate = 30

// Timecode est une valeur immuable : construite par Parse ou par
// l'arithmétique, jamais modifiée sur place.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Frames  int
}

// FormatError signale une chaîne de timecode inexploitable. L'entrée
// fautive est conservée telle quelle pour l'affichage à l'utilisateur.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timecode %q invalide : %s", e.Input, e.Reason)
}

// Parse analyse une chaîne de timecode. Quatre formes sont acceptées,
// essayées dans cet ordre (la première qui correspond gagne) :
//
//	HH:MM:SS:FF
//	HH:MM:SS.FF
//	HH.MM.SS.FF
//	HHMMSSFF   (exactement 8 chiffres)
//
// Une chaîne vide (après trim) vaut le timecode zéro : c'est le chemin
// "pas d'offset fourni", pas une erreur.
func Parse(s string, rate Rate) (Timecode, error) {
	var zero Timecode
	if rate <= 0 {
		rate = DefaultRate
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return zero, nil
	}

	parts, err := splitShape(s)
	if err != nil {
		return zero, err
	}

	names := [4]string{"heures", "minutes", "secondes", "frames"}
	limits := [4]int{99, 59, 59, int(rate) - 1}
	var fields [4]int
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return zero, &FormatError{Input: s, Reason: fmt.Sprintf("champ %s non numérique (%q)", names[i], p)}
		}
		if n < 0 || n > limits[i] {
			return zero, &FormatError{Input: s, Reason: fmt.Sprintf("champ %s hors limites (%d, max %d)", names[i], n, limits[i])}
		}
		fields[i] = n
	}

	return Timecode{Hours: fields[0], Minutes: fields[1], Seconds: fields[2], Frames: fields[3]}, nil
}

// splitShape isole les quatre champs selon la forme détectée. Les formes
// sont structurelles : on ne mélange pas les séparateurs au-delà du point
// final de HH:MM:SS.FF.
func splitShape(s string) ([]string, error) {
	colons := strings.Count(s, ":")
	dots := strings.Count(s, ".")

	switch {
	case colons == 3 && dots == 0:
		return strings.Split(s, ":"), nil

	case colons == 2 && dots == 1 && strings.LastIndex(s, ".") > strings.LastIndex(s, ":"):
		// le point sépare les secondes des frames
		i := strings.LastIndex(s, ".")
		return append(strings.Split(s[:i], ":"), s[i+1:]), nil

	case colons == 0 && dots == 3:
		return strings.Split(s, "."), nil

	case colons == 0 && dots == 0:
		if len(s) != 8 || !isDigits(s) {
			return nil, &FormatError{Input: s, Reason: "forme sans séparateur : 8 chiffres attendus (HHMMSSFF)"}
		}
		return []string{s[0:2], s[2:4], s[4:6], s[6:8]}, nil
	}

	return nil, &FormatError{Input: s, Reason: "ne correspond à aucune forme acceptée (HH:MM:SS:FF, HH:MM:SS.FF, HH.MM.SS.FF, HHMMSSFF)"}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// String retourne la forme canonique HH:MM:SS.FF (point avant les frames,
// deux chiffres par champ). C'est la seule forme émise en sortie, quelle
// que soit la forme lue en entrée. Au-delà de 99 heures le champ s'élargit
// naturellement (103:00:00.00).
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}

// Bracketed retourne la forme canonique entre crochets, telle qu'InqScribe
// sait la relire : [HH:MM:SS.FF].
func (t Timecode) Bracketed() string {
	return "[" + t.String() + "]"
}

// TotalFrames convertit la valeur en nombre absolu de frames à la cadence
// donnée.
func (t Timecode) TotalFrames(rate Rate) int {
	if rate <= 0 {
		rate = DefaultRate
	}
	return (t.Hours*3600+t.Minutes*60+t.Seconds)*int(rate) + t.Frames
}

// FromFrames reconstruit un timecode depuis un nombre de frames. Les heures
// ne sont pas bornées : une somme qui dépasse 99 h reste exacte et
// s'affiche telle quelle, on ne tronque jamais un résultat.
func FromFrames(n int, rate Rate) Timecode {
	if rate <= 0 {
		rate = DefaultRate
	}
	if n < 0 {
		n = 0
	}
	r := int(rate)
	return Timecode{
		Hours:   n / (3600 * r),
		Minutes: (n / (60 * r)) % 60,
		Seconds: (n / r) % 60,
		Frames:  n % r,
	}
}

// Add additionne deux timecodes au niveau frame. L'opération est
// commutative et associative : décaler un décalage revient au même que
// décaler deux fois.
func (t Timecode) Add(o Timecode, rate Rate) Timecode {
	return FromFrames(t.TotalFrames(rate)+o.TotalFrames(rate), rate)
}

// IsZero indique le timecode zéro (00:00:00.00).
func (t Timecode) IsZero() bool {
	var zero Timecode
	return t == zero
}
