package ffmpeg

import (
	"os"
	"path/filepath"
)

// workspace is the private scratch directory for one transcoder invocation.
// No two runs share one, and Cleanup removes everything that was written so
// intermediate files never outlive the call.
type workspace struct {
	dir string
}

func newWorkspace() (*workspace, error) {
	dir, err := os.MkdirTemp("", "captune-*")
	if err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

// Path returns the absolute path for name inside the workspace.
func (w *workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile writes data under name and returns its absolute path.
func (w *workspace) WriteFile(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", err
	}
	return p, nil
}

// Cleanup deletes the workspace and all files in it.
func (w *workspace) Cleanup() {
	os.RemoveAll(w.dir)
}
