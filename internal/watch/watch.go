// Package watch surveille un dossier de dépôt et déclenche la conversion
// de chaque export CSV qui y apparaît. Pensé pour un poste de montage : on
// laisse tourner l'application et on glisse les fichiers dans le dossier.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/patrickprogramme/limescribe/internal/ui"
)

// settleDelay laisse à l'outil d'export le temps de finir d'écrire le
// fichier avant qu'on le lise.
const settleDelay = 300 * time.Millisecond

// Handler convertit un fichier déposé. Une erreur de conversion n'arrête
// pas la surveillance.
type Handler func(ctx context.Context, path string) error

// Run surveille dir (non récursif) et appelle handle pour chaque .csv créé,
// jusqu'à annulation du contexte. Les fichiers déjà présents au démarrage
// ne sont pas traités.
func Run(ctx context.Context, dir string, handle Handler, u ui.Interface) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("création du watcher : %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("surveillance de %s : %w", dir, err)
	}
	u.PrintInfo(ctx, fmt.Sprintf("Surveillance de %s (Ctrl+C pour quitter)", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isNewCSV(ev) {
				continue
			}
			time.Sleep(settleDelay)
			u.PrintInfo(ctx, fmt.Sprintf("Nouveau fichier détecté : %s", ev.Name))
			if err := handle(ctx, ev.Name); err != nil {
				u.PrintError(ctx, fmt.Sprintf("échec de conversion de %s : %v", ev.Name, err))
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			u.PrintError(ctx, fmt.Sprintf("watcher : %v", werr))
		}
	}
}

// isNewCSV filtre les événements : seules les créations de .csv nous
// intéressent (un dépôt par déplacement arrive aussi comme Create). Les
// fichiers cachés et temporaires sont ignorés.
func isNewCSV(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
