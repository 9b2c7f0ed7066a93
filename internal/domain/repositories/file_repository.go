package repositories

import "context"

// FileRepository discovers and reads/writes workspace files. Paths are always
// forward-slash and relative to root.
type FileRepository interface {
	// Discover returns the sorted, unique relative paths matching includes,
	// excluding the default ignore set plus ignores.
	Discover(ctx context.Context, root string, includes, ignores []string, followSymlinks bool) ([]string, error)

	// ReadFile returns the file's text. A file that no longer exists yields an
	// error wrapping fs.ErrNotExist.
	ReadFile(ctx context.Context, root, path string) (string, error)

	// WriteFile replaces the file's content, keeping its permissions.
	WriteFile(ctx context.Context, root, path, content string) error
}
