package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are tried in order. Earlier files win over later ones and the
// process environment wins over both.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every env file that exists in dir and returns the paths
// that were applied. Unreadable files are skipped.
func loadEnvFiles(dir string) []string {
	var loaded []string
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}
