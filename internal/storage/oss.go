package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"billsplit-backend/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// OSSStore uploads proofs to an Alibaba Cloud OSS bucket.
type OSSStore struct {
	bucket   *oss.Bucket
	endpoint string
}

func NewOSSStore(cfg *config.Config) (*OSSStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.OSSBucketName)
	if err != nil {
		return nil, err
	}

	return &OSSStore{bucket: bucket, endpoint: cfg.OSSEndpoint}, nil
}

func (s *OSSStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := "proofs/" + uuid.New().String() + filepath.Ext(file.Filename)
	if err := s.bucket.PutObject(key, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.%s/%s", s.bucket.BucketName, s.endpoint, key), nil
}
