package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/patrickprogramme/limescribe/internal/clipboard"
	"github.com/patrickprogramme/limescribe/internal/transcript"
)

type terminalUI struct {
	reader *bufio.Reader
}

func NewTerminal() Interface {
	return &terminalUI{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalUI) GetCSVPath(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := clipboard.ReadAll(); err == nil {
		clip = strings.TrimSpace(clip)
		if transcript.IsSupportedInput(clip) {
			t.PrintInfo(ctx, fmt.Sprintf("Utilisation du chemin depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	// 2) prompt
	for {
		fmt.Print("Entrez le chemin (ou l'URL) d'un export CSV Limecraft: ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("lecture stdin: %w", err)
		}
		path := strings.TrimSpace(input)
		if transcript.IsSupportedInput(path) {
			return path, nil
		}
		fmt.Println("❌ Entrée invalide (fichier .csv ou URL http(s) attendu). Essayez à nouveau.")
	}
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Println("\n\nAppuyez sur Ctrl+C pour quitter.")

	// Prépare le canal pour les signaux d'interruption
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done(): // Context annulé ailleurs
		return ctx.Err()
	case <-sigCh: // Reçu Ctrl+C (SIGINT ou SIGTERM)
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Println(s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(os.Stderr, s)
}
