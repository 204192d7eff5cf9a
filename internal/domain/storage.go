package domain

import "context"

// FileStore persists uploaded binary objects (event images, avatars) and
// returns a publicly reachable URL.
type FileStore interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (url string, err error)
	Delete(ctx context.Context, url string) error
}
