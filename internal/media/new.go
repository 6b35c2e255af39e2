package media

import (
	"os"

	"github.com/nguyentantai21042004/voicescribe/internal/logger"
	"github.com/nguyentantai21042004/voicescribe/pkg/executor"
)

type implExtractor struct {
	executor executor.Executor
	logger   logger.Logger
	tempDir  string
}

// New creates an Extractor that writes temporary files into tempDir.
// An empty tempDir falls back to the system temp directory.
func New(exec executor.Executor, log logger.Logger, tempDir string) Extractor {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &implExtractor{
		executor: exec,
		logger:   log,
		tempDir:  tempDir,
	}
}
