package driven

import "context"

// FileWatcher reports when a file's contents change.
type FileWatcher interface {
	// Watch sends the file path after each settled change. The channel is
	// closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan string, error)
}
