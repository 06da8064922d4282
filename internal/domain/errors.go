package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrProjectNotFound      = errors.New("project not found")
	ErrSnapshotNotFound     = errors.New("snapshot not found")
	ErrDuplicateProjectName = errors.New("project name already exists")
	ErrEmptyDocument        = errors.New("document text is empty")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
)
