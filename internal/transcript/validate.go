package transcript

import "strings"

// IsSupportedInput valide grossièrement une entrée utilisateur : un chemin
// de fichier .csv ou une URL http(s) (export partagé par lien). Sert au
// filtrage du presse-papier et du prompt, pas à garantir que le contenu est
// exploitable.
func IsSupportedInput(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if IsRemoteInput(s) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(s), ".csv")
}

// IsRemoteInput indique une entrée à télécharger plutôt qu'à lire sur
// disque.
func IsRemoteInput(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
