package storage

import (
	"fmt"
	"mime/multipart"

	"billsplit-backend/config"
)

// ProofStore persists an uploaded payment proof and returns a stable
// reference the bill service attaches to the payment. References are opaque
// to the caller.
type ProofStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// NewStore builds the proof store selected by UPLOAD_DRIVER.
func NewStore(cfg *config.Config) (ProofStore, error) {
	switch cfg.UploadDriver {
	case "local":
		return NewLocalStore(cfg.UploadDir)
	case "oss":
		return NewOSSStore(cfg)
	default:
		return nil, fmt.Errorf("unknown upload driver: %s", cfg.UploadDriver)
	}
}
