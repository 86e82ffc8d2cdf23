package utils

import (
	"errors"
	"path/filepath"
	"strings"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrFileTooLarge     = errors.New("file size exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
)

func ValidateImageFile(filename string, size, maxSize int64) error {
	if maxSize > 0 && size > maxSize {
		return ErrFileTooLarge
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrInvalidImageType
	}
	return nil
}
