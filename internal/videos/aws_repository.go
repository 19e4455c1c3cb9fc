package videos

import "context"

// AWSRepository is the binary object store holding the uploaded sources,
// encoded outputs and thumbnail images, keyed by filename.
type AWSRepository interface {
	UploadFile(ctx context.Context, key, localPath string) error
	DownloadFile(ctx context.Context, key, localPath string) error
	RemoveObject(ctx context.Context, key string) error
}
