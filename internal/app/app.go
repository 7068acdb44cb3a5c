package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/limescribe/internal/clipboard"
	"github.com/patrickprogramme/limescribe/internal/config"
	"github.com/patrickprogramme/limescribe/internal/fetch"
	"github.com/patrickprogramme/limescribe/internal/fsutil"
	"github.com/patrickprogramme/limescribe/internal/render"
	"github.com/patrickprogramme/limescribe/internal/transcript"
	"github.com/patrickprogramme/limescribe/internal/ui"
	"github.com/patrickprogramme/limescribe/internal/watch"
	"github.com/patrickprogramme/limescribe/pkg/timecode"
)

const (
	defaultUpdateTimeout = 15 * time.Second
	defaultFetchTimeout  = 15 * time.Second
	defaultFetchMaxBytes = 10_000_000
)

// CLIFlags contient les informations venant des flags de l'app
type CLIFlags struct {
	ConfigPath     string
	Input          string
	Offset         string
	Name           string
	OutDir         string
	Word           bool
	Inqscribe      bool
	Prefix         bool
	Watch          bool
	ResetTemplates bool // traité dans main, avant la construction de App
}

// App orchestre les différentes dépendances (UI, conversion, FS...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	renderer *render.Renderer
	version  string
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, renderer *render.Renderer, version string) *App {
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		renderer: renderer,
		version:  version,
	}
}

// Run exécute le flux principal : une conversion unique, ou la surveillance
// d'un dossier en mode watch.
func (a *App) Run(ctx context.Context) error {
	// Update check (optionnel, jamais bloquant)
	if a.cfg.AutoUpdateCheck {
		a.AppUpdateCheck(ctx, defaultUpdateTimeout)
	}

	if a.flags.Watch {
		return a.runWatch(ctx)
	}

	// Récupération de l'entrée : priorité flag > clipboard > prompt
	input := a.flags.Input
	if input == "" {
		// ui.GetCSVPath effectue clipboard + prompt si nécessaire
		in, err := a.ui.GetCSVPath(ctx)
		if err != nil {
			return fmt.Errorf("get input: %w", err)
		}
		input = in
	}

	created, err := a.ConvertOne(ctx, input)
	if err != nil {
		return err
	}

	a.ui.PrintInfo(ctx, fmt.Sprintf("Conversion terminée : %d fichier(s) créé(s)", len(created)))
	for _, f := range created {
		a.ui.PrintInfo(ctx, "  "+f)
	}

	if a.cfg.CopyResultPath && len(created) > 0 {
		if err := clipboard.WriteAll(strings.Join(created, "\n")); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: impossible d'écrire dans le presse-papier: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "Chemin(s) copié(s) dans le presse-papier.")
		}
	}

	// Attendre terminaison (Ctrl+C) via UI
	return a.ui.WaitForExit(ctx)
}

// ConvertOne traite une entrée (chemin local ou URL) de bout en bout :
// chargement, décalage des timecodes, génération des artefacts demandés.
// Retourne les chemins des fichiers créés.
func (a *App) ConvertOne(ctx context.Context, input string) ([]string, error) {
	rate := timecode.Rate(a.cfg.FrameRate)

	doc, err := a.loadDocument(ctx, input, rate)
	if err != nil {
		return nil, err
	}

	// offset vide = timecode zéro = aucun décalage
	offset, err := timecode.Parse(a.flags.Offset, rate)
	if err != nil {
		return nil, fmt.Errorf("offset invalide : %w", err)
	}
	doc = transcript.ApplyOffset(doc, offset, rate)

	title := strings.TrimSpace(a.flags.Name)
	if title == "" {
		title = stemOf(input)
	}
	title = fsutil.SanitizeFilename(title)

	lines := doc.Lines(transcript.RenderOptions{Title: title, PrefixTitle: a.cfg.FilenamePrefix})

	return a.EmitArtifacts(ctx, title, lines, a.cfg.OutputDir)
}

// loadDocument acquiert les octets de l'export puis les parse : téléchargement
// borné pour une URL, lecture disque sinon.
func (a *App) loadDocument(ctx context.Context, input string, rate timecode.Rate) (transcript.Document, error) {
	if transcript.IsRemoteInput(input) {
		data, err := fetch.FetchBytesWithTimeout(ctx, input, defaultFetchTimeout, defaultFetchMaxBytes)
		if err != nil {
			return transcript.Document{}, fmt.Errorf("téléchargement de l'export : %w", err)
		}
		return transcript.Parse(data, rate)
	}
	return transcript.LoadFile(input, rate)
}

// stemOf extrait le nom de base de l'entrée, sans extension ni query string.
func stemOf(input string) string {
	base := filepath.Base(strings.TrimSpace(input))
	// pour une URL, couper query string et fragment
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return "transcript"
	}
	return base
}

// runWatch surveille un dossier et convertit chaque nouveau CSV qui y est
// déposé. Le dossier vient de watch_dir dans la config, -input le remplace.
func (a *App) runWatch(ctx context.Context) error {
	dir := a.cfg.WatchDir
	if a.flags.Input != "" {
		dir = a.flags.Input
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("mode watch : aucun dossier (watch_dir dans la config, ou -input)")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("mode watch : dossier %s inaccessible : %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mode watch : %s n'est pas un dossier", dir)
	}

	// seuls les nouveaux fichiers déclenchent une conversion
	if has, _ := fsutil.DirHasMatchingFiles(dir, []string{"*.csv", "*.CSV"}); has {
		a.ui.PrintInfo(ctx, "Note : les CSV déjà présents dans le dossier ne seront pas convertis.")
	}

	return watch.Run(ctx, dir, func(ctx context.Context, path string) error {
		created, err := a.ConvertOne(ctx, path)
		if err != nil {
			return err
		}
		for _, f := range created {
			a.ui.PrintInfo(ctx, "  "+f)
		}
		return nil
	}, a.ui)
}
