package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/patrickprogramme/limescribe/internal/docx"
	"github.com/patrickprogramme/limescribe/internal/fsutil"
	"github.com/patrickprogramme/limescribe/internal/inqscribe"
	"github.com/patrickprogramme/limescribe/internal/transcript"
	"github.com/patrickprogramme/limescribe/internal/updater"
)

// ArtifactError : échec de génération ou d'écriture d'un seul artefact.
// L'échec d'un artefact n'empêche pas l'autre d'être produit.
type ArtifactError struct {
	Format string // "word" ou "inqscribe"
	Path   string // chemin visé, vide si l'échec précède l'écriture
	Err    error
}

func (e *ArtifactError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("artefact %s (%s) : %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("artefact %s : %v", e.Format, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// EmitArtifacts génère et écrit chaque artefact demandé. Les échecs sont
// signalés au fil de l'eau ; le job n'échoue que si aucun fichier n'a pu
// être créé.
func (a *App) EmitArtifacts(ctx context.Context, title string, lines []transcript.Line, outDir string) ([]string, error) {
	word, inq := a.wantedFormats()
	if !word && !inq {
		return nil, errors.New("aucun format de sortie demandé (formats dans la config, ou -word / -inqscribe)")
	}

	var created []string
	var failures []error

	if word {
		if path, err := a.emitWord(title, lines, outDir); err != nil {
			aerr := &ArtifactError{Format: "word", Path: path, Err: err}
			a.ui.PrintError(ctx, aerr.Error())
			failures = append(failures, aerr)
		} else {
			created = append(created, path)
		}
	}
	if inq {
		if path, err := a.emitInqscribe(title, lines, outDir); err != nil {
			aerr := &ArtifactError{Format: "inqscribe", Path: path, Err: err}
			a.ui.PrintError(ctx, aerr.Error())
			failures = append(failures, aerr)
		} else {
			created = append(created, path)
		}
	}

	if len(created) == 0 && len(failures) > 0 {
		return nil, errors.Join(failures...)
	}
	return created, nil
}

// wantedFormats résout les formats à produire : si au moins un flag de
// format est passé, les flags décident seuls ; sinon la config.
func (a *App) wantedFormats() (word, inqscribe bool) {
	if a.flags.Word || a.flags.Inqscribe {
		return a.flags.Word, a.flags.Inqscribe
	}
	return a.cfg.Formats.Word, a.cfg.Formats.Inqscribe
}

func (a *App) emitWord(title string, lines []transcript.Line, outDir string) (string, error) {
	data, err := docx.Build(title, lines)
	if err != nil {
		return "", fmt.Errorf("build docx: %w", err)
	}
	return fsutil.SaveDocumentAtomic(outDir, title, ".docx", data, a.cfg.Overwrite)
}

func (a *App) emitInqscribe(title string, lines []transcript.Line, outDir string) (string, error) {
	fd := inqscribe.NewFileData(title, lines, a.cfg.Inqscribe.FontName, a.cfg.Inqscribe.FontSize, a.cfg.FrameRate)
	data, err := a.renderer.Render(inqscribe.TemplateName, fd)
	if err != nil {
		return "", fmt.Errorf("render inqscr: %w", err)
	}
	return fsutil.SaveDocumentAtomic(outDir, title, ".inqscr", data, a.cfg.Overwrite)
}

// AppUpdateCheck compare la version du binaire avec la dernière release
// GitHub et affiche le lien de téléchargement si une mise à jour existe.
func (a *App) AppUpdateCheck(ctx context.Context, timeout time.Duration) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckAppUpdate(uc, a.version)
	if err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("vérification de mise à jour a échoué : %v", err))
		return err
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ limescribe est à jour (%s)", check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de limescribe disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))

	return nil
}
