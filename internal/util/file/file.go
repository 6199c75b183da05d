// Package file holds small filesystem helpers shared by the writers.
package file

import (
	"github.com/google/renameio/v2"
)

// WriteAtomic replaces path with data. The content is synced to a temporary
// file next to path before it is renamed into place, so a crash leaves either
// the old or the new file. An existing file's permissions are preserved; new
// files get 0644.
func WriteAtomic(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644, renameio.WithExistingPermissions())
}
