package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gend/internal/common/fsutil"
	"gend/pkg/types"
)

// BuiltinModel is always present: the deterministic test model that needs no
// weights on disk.
const BuiltinModel = "builtin-tiny"

// builtin returns the registry entry for the built-in model.
func builtin() types.Model {
	return types.Model{ID: BuiltinModel, Name: "Builtin Tiny (deterministic)"}
}

// LoadDir scans a directory for *.gguf files and builds a registry from
// filenames, with the built-in model prepended. ID is the full filename
// (including extension); Path is the absolute file path.
func LoadDir(dir string) ([]types.Model, error) {
	models := []types.Model{builtin()}
	if dir == "" {
		return models, nil
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		// Use full filename as ID (e.g., "llama-3.1-8b-q4_k_m.gguf")
		models = append(models, types.Model{ID: name, Name: name, Path: filepath.Join(abs, name)})
	}
	return models, nil
}
