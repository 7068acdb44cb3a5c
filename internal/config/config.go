package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/limescribe/internal/assets"
	"github.com/patrickprogramme/limescribe/internal/fsutil"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`
	WatchDir  string `yaml:"watch_dir"`

	// Timecodes
	FrameRate int `yaml:"frame_rate"`

	// Formats de sortie
	Formats struct {
		Word      bool `yaml:"word"`
		Inqscribe bool `yaml:"inqscribe"`
	} `yaml:"formats"`

	// Présentation
	FilenamePrefix bool `yaml:"filename_prefix"`

	// Fichiers
	Overwrite      bool `yaml:"overwrite"`
	CopyResultPath bool `yaml:"copy_result_path"`

	// Apparence du fichier InqScribe
	Inqscribe struct {
		FontName string `yaml:"font_name"`
		FontSize int    `yaml:"font_size"`
	} `yaml:"inqscribe"`

	// Mises à jour
	AutoUpdateCheck bool `yaml:"auto_update_check"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = "."
	c.WatchDir = ""

	// Timecodes
	c.FrameRate = 30

	// Formats de sortie
	c.Formats.Word = true
	c.Formats.Inqscribe = true

	// Présentation
	c.FilenamePrefix = false

	// Fichiers
	c.Overwrite = false
	c.CopyResultPath = false

	// InqScribe
	c.Inqscribe.FontName = "Tahoma"
	c.Inqscribe.FontSize = 12

	// Mises à jour
	c.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "limescribe.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		// orchestrateConfigUpgrade doit faire la sauvegarde, migrer et écrire la config
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	// lire l'asset embarqué via assets.Embedded et DefaultConfigAsset
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// s'assurer que le dossier parent existe
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	// log utile pour le debugging
	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)
	c.WatchDir = strings.TrimSpace(c.WatchDir)
	if c.WatchDir != "" {
		c.WatchDir = filepath.Clean(c.WatchDir)
	}

	// la cadence doit rester strictement positive
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}

	// Trim and normalize strings
	c.Inqscribe.FontName = strings.TrimSpace(c.Inqscribe.FontName)
	if c.Inqscribe.FontName == "" {
		c.Inqscribe.FontName = "Tahoma"
	}
	if c.Inqscribe.FontSize <= 0 {
		c.Inqscribe.FontSize = 12
	}
}
