package storage

import "context"

// StorageService stores listing photos and hands back serveable URLs.
type StorageService interface {
	UploadPhoto(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeletePhoto(ctx context.Context, publicID string) error
	GetPhotoURL(publicID string) (string, error)
}
