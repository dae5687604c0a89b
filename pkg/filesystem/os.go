package filesystem

import "github.com/spf13/afero"

// NewOS returns the real filesystem.
func NewOS() FS {
	return NewAferoFS(afero.NewOsFs())
}
