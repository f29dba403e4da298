package artifact

import "fmt"

// Backends accepted by Open.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Open builds the store for backend. dir is used by the fs backend, s3 by
// the s3 backend.
func Open(backend, dir string, s3 S3Config) (Store, error) {
	switch backend {
	case "", BackendFS:
		return NewFileStore(dir)
	case BackendS3:
		return NewS3Store(s3)
	}
	return nil, fmt.Errorf("unknown artifact backend %q (want fs|s3)", backend)
}
