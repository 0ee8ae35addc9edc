// Package docs loads the plain-text documents an interview is prepared from.
package docs

import (
	"fmt"
	"os"
	"strings"
)

// LoadText reads a document as UTF-8 text. An unreadable or empty file is an
// error: the session cannot start without its inputs.
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document %q: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("document %q is empty", path)
	}

	return text, nil
}
