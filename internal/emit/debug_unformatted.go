package emit

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file in dir so a
// template or formatting failure can be inspected. It never makes rendering
// fail harder than it already has.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".unformatted" + filepath.Ext(filename)

	return os.WriteFile(filepath.Join(dir, debugName), content, 0o644)
}
