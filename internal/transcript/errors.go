package transcript

import "fmt"

// ValidationError signale un export inutilisable : colonnes requises
// absentes, disposition non reconnue, ou timecode de ligne invalide.
// Le chargement est rejeté en bloc : un transcript tronqué est pire qu'un
// transcript refusé.
type ValidationError struct {
	Row    int    // numéro de ligne 1-based dans le fichier, 0 si global
	Field  string // champ en cause, si identifiable
	Reason string
	Err    error // erreur sous-jacente, ex *timecode.FormatError
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("CSV invalide (ligne %d) : %s", e.Row, e.Reason)
	}
	return "CSV invalide : " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FileError signale un fichier source illisible ou indécodable.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fichier source : %v", e.Err)
	}
	return fmt.Sprintf("fichier source %s : %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
