package ui

import (
	"context"
)

type Interface interface {
	// GetCSVPath doit renvoyer une entrée exploitable (chemin .csv ou URL).
	// Implémentation terminale : priorité clipboard -> prompt
	GetCSVPath(ctx context.Context) (string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
