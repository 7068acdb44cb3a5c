package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidatePaths vérifie de manière statique que les répertoires configurés
// sont utilisables. Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidatePaths() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	// output_dir est créé à la première écriture ; on signale juste s'il manque
	out := strings.TrimSpace(c.OutputDir)
	if out != "" && out != "." {
		if st, serr := os.Stat(out); serr != nil {
			if os.IsNotExist(serr) {
				warnings = append(warnings, fmt.Sprintf("le répertoire de sortie n'existe pas encore : %s (il sera créé)", out))
			} else {
				return warnings, fmt.Errorf("impossible d'accéder au répertoire de sortie %s : %w", out, serr)
			}
		} else if !st.IsDir() {
			return warnings, fmt.Errorf("le chemin de sortie n'est pas un répertoire : %s", out)
		}
	}

	// watch_dir doit exister et être un répertoire s'il est renseigné
	if c.WatchDir != "" {
		if st, serr := os.Stat(c.WatchDir); serr != nil {
			if os.IsNotExist(serr) {
				warnings = append(warnings, fmt.Sprintf("le dossier surveillé n'existe pas : %s", c.WatchDir))
			} else {
				return warnings, fmt.Errorf("impossible d'accéder au dossier surveillé %s : %w", c.WatchDir, serr)
			}
		} else if !st.IsDir() {
			return warnings, fmt.Errorf("le chemin surveillé n'est pas un répertoire : %s", c.WatchDir)
		}
	}

	return warnings, nil
}
