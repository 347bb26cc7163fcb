package storage

import (
	"context"
	"fmt"
	"strings"

	"nexoformar/internal/config"
)

const (
	// TypeLocal stores files on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores files on Amazon S3 or a compatible backend.
	TypeS3 = "s3"
	// TypeOSS stores files on Alibaba Cloud OSS.
	TypeOSS = "oss"
	// TypeCOS stores files on Tencent Cloud COS.
	TypeCOS = "cos"
	// TypeR2 stores files on Cloudflare R2.
	TypeR2 = "r2"
)

// SaveOptions control how a backend persists a file. Category organises
// files on disk (course images, user photos); Extension hints the
// preferred file extension without the leading dot.
type SaveOptions struct {
	Category  string
	Extension string
	BaseName  string
}

// Storage persists binary data and returns a backend-specific identifier,
// e.g. a relative path for local storage or an object key for S3.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by backends whose files can be
// served directly over HTTP from a local directory.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the storage backend selected by the config.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
