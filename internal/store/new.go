package store

import (
	"github.com/nguyentantai21042004/voicescribe/internal/logger"
)

type implRecords struct {
	dir    string
	logger logger.Logger
}

// NewRecords creates a record store rooted at dir. The directory is
// created on first save.
func NewRecords(dir string, log logger.Logger) Records {
	return &implRecords{dir: dir, logger: log}
}

type implCredentials struct {
	path string
}

// NewCredentials creates a file-backed credential store at path.
func NewCredentials(path string) Credentials {
	return &implCredentials{path: path}
}
