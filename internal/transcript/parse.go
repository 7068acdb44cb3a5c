package transcript

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/patrickprogramme/limescribe/pkg/timecode"
)

// Colonnes attendues dans un export Limecraft classique. La correspondance
// se fait sans tenir compte de la casse et l'ordre des colonnes est libre ;
// les colonnes supplémentaires (Media Duration, etc.) sont ignorées.
const (
	colStart   = "Media Start"
	colSpeaker = "Speakers"
	colText    = "Transcript"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile lit le fichier et délègue à Parse.
func LoadFile(path string, rate timecode.Rate) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &FileError{Path: path, Err: err}
	}
	doc, err := Parse(data, rate)
	if err != nil {
		var fe *FileError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return Document{}, err
	}
	return doc, nil
}

// Parse exécute le pipeline complet sur un export déjà en mémoire :
// résolution d'encodage, lecture CSV, détection de la disposition,
// extraction des enregistrements.
func Parse(data []byte, rate timecode.Rate) (Document, error) {
	if rate <= 0 {
		rate = timecode.DefaultRate
	}

	text, err := decodeBytes(data)
	if err != nil {
		return Document{}, &FileError{Err: err}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // nombre de colonnes libre d'une ligne à l'autre
	r.LazyQuotes = true    // les exports ne citent pas toujours proprement
	rows, err := r.ReadAll()
	if err != nil {
		return Document{}, &ValidationError{Reason: fmt.Sprintf("lecture CSV : %v", err), Err: err}
	}

	lay, err := detectLayout(rows, rate)
	if err != nil {
		return Document{}, err
	}

	var records []Record
	switch l := lay.(type) {
	case standardLayout:
		for i := 1; i < len(rows); i++ {
			rec, skip, rerr := extractStandard(rows[i], l, rate)
			if rerr != nil {
				return Document{}, rowError(i+1, rerr)
			}
			if !skip {
				records = append(records, rec)
			}
		}
	case combinedLayout:
		for i := l.dataFrom; i < len(rows); i++ {
			rec, skip, rerr := extractCombined(rows[i], rate)
			if rerr != nil {
				return Document{}, rowError(i+1, rerr)
			}
			if !skip {
				records = append(records, rec)
			}
		}
	}

	if len(records) == 0 {
		return Document{}, &ValidationError{Reason: "aucune ligne de transcription exploitable"}
	}

	return Document{Records: records}, nil
}

// decodeBytes essaie les encodages supportés dans l'ordre : UTF-8 avec BOM,
// UTF-8, latin-1, windows-1252. latin-1 acceptant n'importe quelle suite
// d'octets, l'échec complet est essentiellement théorique ; la dernière
// marche reste là au cas où.
func decodeBytes(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		rest := bytes.TrimPrefix(data, utf8BOM)
		if utf8.Valid(rest) {
			return string(rest), nil
		}
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		if out, err := cm.NewDecoder().Bytes(data); err == nil {
			return string(out), nil
		}
	}
	return "", errors.New("aucun encodage supporté (utf-8-sig, utf-8, latin-1, windows-1252)")
}

// Les deux dispositions connues des exports, résolues une seule fois par
// fichier avant d'extraire quoi que ce soit.
type layout interface{ layoutKind() string }

// standardLayout : colonnes nommées. start et text sont les index des
// colonnes requises ; speaker vaut -1 quand la colonne est absente.
type standardLayout struct {
	start   int
	speaker int
	text    int
}

func (standardLayout) layoutKind() string { return "standard" }

// combinedLayout : tout le contenu d'une ligne dans une seule cellule
// "timecode,locuteur,texte". dataFrom est l'index de la première ligne de
// données (une ligne d'en-tête libre peut précéder).
type combinedLayout struct {
	dataFrom int
}

func (combinedLayout) layoutKind() string { return "combined" }

// detectLayout résout la disposition du fichier. Les en-têtes nommés
// priment ; sinon on tente la forme combinée sur les deux premières lignes
// non vides (la première peut être un en-tête quelconque).
func detectLayout(rows [][]string, rate timecode.Rate) (layout, error) {
	if len(rows) == 0 {
		return nil, &ValidationError{Reason: "fichier CSV vide"}
	}

	std := standardLayout{start: -1, speaker: -1, text: -1}
	for i, h := range rows[0] {
		switch strings.ToLower(cleanCell(h)) {
		case strings.ToLower(colStart):
			if std.start == -1 {
				std.start = i
			}
		case strings.ToLower(colSpeaker):
			if std.speaker == -1 {
				std.speaker = i
			}
		case strings.ToLower(colText):
			if std.text == -1 {
				std.text = i
			}
		}
	}
	if std.start >= 0 && std.text >= 0 {
		return std, nil
	}

	seen := 0
	for i, row := range rows {
		if rowEmpty(row) {
			continue
		}
		seen++
		if cell, ok := singleCell(row); ok {
			if parts, n := splitCombined(cell); n == 3 {
				if _, err := timecode.Parse(parts[0], rate); err == nil {
					return combinedLayout{dataFrom: i}, nil
				}
			}
		}
		if seen >= 2 {
			break
		}
	}

	var missing []string
	if std.start < 0 {
		missing = append(missing, colStart)
	}
	if std.text < 0 {
		missing = append(missing, colText)
	}
	return nil, &ValidationError{
		Field:  strings.Join(missing, ", "),
		Reason: fmt.Sprintf("colonnes requises introuvables (%s) et disposition combinée non reconnue", strings.Join(missing, ", ")),
	}
}

// extractStandard transforme une ligne de la disposition à colonnes.
// skip=true pour les lignes vides ou sans texte de transcription.
func extractStandard(row []string, l standardLayout, rate timecode.Rate) (Record, bool, error) {
	if rowEmpty(row) {
		return Record{}, true, nil
	}
	text := strings.TrimSpace(cellAt(row, l.text))
	if text == "" {
		// lignes séparatrices fréquentes dans les exports, on saute
		return Record{}, true, nil
	}
	start, err := timecode.Parse(cellAt(row, l.start), rate)
	if err != nil {
		return Record{}, false, err
	}
	speaker := ""
	if l.speaker >= 0 {
		speaker = strings.TrimSpace(cellAt(row, l.speaker))
	}
	return Record{Start: start, Speaker: speaker, Text: text}, false, nil
}

// extractCombined transforme une ligne de la disposition combinée.
func extractCombined(row []string, rate timecode.Rate) (Record, bool, error) {
	cell, ok := firstNonEmptyCell(row)
	if !ok {
		return Record{}, true, nil
	}
	parts, _ := splitCombined(cell)
	if strings.TrimSpace(parts[2]) == "" {
		return Record{}, true, nil
	}
	start, err := timecode.Parse(parts[0], rate)
	if err != nil {
		return Record{}, false, err
	}
	return Record{Start: start, Speaker: parts[1], Text: parts[2]}, false, nil
}

// splitCombined découpe "timecode,locuteur,texte" sur les deux premières
// virgules hors guillemets. Le texte garde ses propres virgules : tout ce
// qui suit la deuxième virgule reste entier. Retourne les trois parties
// (les manquantes vides) et le nombre de parties trouvées.
func splitCombined(s string) ([3]string, int) {
	var parts []string
	var cur strings.Builder
	var quote byte
	inQuotes := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case (ch == '"' || ch == '\'') && !inQuotes:
			inQuotes = true
			quote = ch
		case inQuotes && ch == quote:
			// guillemet doublé = guillemet échappé
			if i+1 < len(s) && s[i+1] == quote {
				cur.WriteByte(ch)
				i++
			} else {
				inQuotes = false
				quote = 0
			}
		case ch == ',' && !inQuotes && len(parts) < 2:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))

	var out [3]string
	for i := 0; i < len(parts) && i < 3; i++ {
		out[i] = strings.Trim(parts[i], `"'`)
	}
	// Limecraft échappe les guillemets du texte en les doublant
	out[2] = strings.ReplaceAll(out[2], `""`, `"`)
	return out, len(parts)
}

// rowError enveloppe une erreur de ligne : l'échec d'une seule ligne
// rejette tout le chargement.
func rowError(row int, err error) error {
	var fe *timecode.FormatError
	if errors.As(err, &fe) {
		return &ValidationError{Row: row, Field: colStart, Reason: fe.Error(), Err: err}
	}
	return &ValidationError{Row: row, Reason: err.Error(), Err: err}
}

// cleanCell retire espaces et BOM résiduel d'une cellule d'en-tête.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, string(utf8BOM))
	return strings.TrimSpace(s)
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// singleCell retourne la seule cellule non vide de la ligne, si la ligne en
// contient exactement une.
func singleCell(row []string) (string, bool) {
	found := ""
	count := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			found = c
			count++
		}
	}
	if count != 1 {
		return "", false
	}
	return found, true
}

func firstNonEmptyCell(row []string) (string, bool) {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return c, true
		}
	}
	return "", false
}
