package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document is empty")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)
