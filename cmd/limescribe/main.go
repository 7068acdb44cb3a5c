package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/limescribe/internal/app"
	"github.com/patrickprogramme/limescribe/internal/assets"
	"github.com/patrickprogramme/limescribe/internal/bootstrap"
	"github.com/patrickprogramme/limescribe/internal/config"
	"github.com/patrickprogramme/limescribe/internal/render"
	"github.com/patrickprogramme/limescribe/internal/ui"
)

// version compilée dans le binaire, comparée aux releases GitHub
const appVersion = "v1.7.0"

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "limescribe.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "limescribe.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	// s'assurer que les templates existent (dans binDir/templates)
	tplDir := filepath.Join(binDir, "templates")
	if err := bootstrap.EnsureTemplatesPresent(
		tplDir,
		assets.Embedded,
		assets.DefaultTemplatePaths,
	); err != nil {
		log.Printf("warning: ensure templates present: %v", err)
	}

	// -reset-templates : réécrit les templates d'origine (backup des versions modifiées)
	if flags.ResetTemplates {
		status, err := bootstrap.ExportDefaults(assets.Embedded, "templates", tplDir, true)
		if err != nil {
			log.Fatalf("reset templates: %v", err)
		}
		for name, st := range status {
			fmt.Printf("  %s : %s\n", name, st)
		}
	}

	// charger la config depuis flags.ConfigPath (qui pointe vers binDir/limescribe.yaml si par défaut)
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// appliquer les flags par-dessus la config
	if flags.Prefix {
		cfg.FilenamePrefix = true
	}
	if flags.OutDir != "" {
		cfg.OutputDir = flags.OutDir
	}

	warnings, err := cfg.ValidatePaths()
	if err != nil {
		log.Fatalf("config invalide: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	// construction du renderer
	renderer, err := render.DefaultRenderer(exePath)
	if err != nil {
		log.Fatalf("impossible de construire le renderer: %v", err)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags, renderer, appVersion)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "limescribe.yaml", "path to config file")
	flag.StringVar(&f.Input, "input", "", "chemin ou URL d'un export CSV Limecraft (optionnel)")
	flag.StringVar(&f.Offset, "offset", "", "timecode de début du média, ex 01:54:18:03 (vide = aucun décalage)")
	flag.StringVar(&f.Name, "name", "", "nom de base des fichiers générés (défaut : nom du CSV)")
	flag.StringVar(&f.OutDir, "out", "", "répertoire de sortie (remplace output_dir de la config)")
	flag.BoolVar(&f.Word, "word", false, "générer l'artefact Word (.docx)")
	flag.BoolVar(&f.Inqscribe, "inqscribe", false, "générer l'artefact InqScribe (.inqscr)")
	flag.BoolVar(&f.Prefix, "prefix", false, "préfixer chaque timecode du nom du document")
	flag.BoolVar(&f.Watch, "watch", false, "surveiller un dossier et convertir chaque nouveau CSV")
	flag.BoolVar(&f.ResetTemplates, "reset-templates", false, "restaurer les templates d'origine puis continuer")
	flag.Parse()
	return f
}
