package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/taskpad/internal/client/engine"
	"golang.org/x/term"
)

// test seams
var (
	readFile   = os.ReadFile
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// loadFile reads the document at path for upload.
func loadFile(path string) (*engine.File, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &engine.File{Name: filepath.Base(path), Data: data}, nil
}
