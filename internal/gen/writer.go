package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory,
// creating the directory if needed. Files whose content is unchanged are not
// rewritten, so build caches and file watchers stay quiet.
func WriteFiles(files []GeneratedFile) (written []string, err error) {
	for _, file := range files {
		outputPath := file.Path()

		if existing, readErr := os.ReadFile(outputPath); readErr == nil && string(existing) == string(file.Content) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", outputPath, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}

	return filepath.Join(dir, name)
}

// writeDebugUnformatted saves code that failed to format next to where it
// would have gone, as "<name>.unformatted.go".
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, name), content, filePerm)
}
