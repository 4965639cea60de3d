package source

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// FileSource reads a job list from disk. Failures are not recoverable since
// there is no other data to fall back on.
type FileSource struct {
	logger *logrus.Logger
	path   string
}

func NewFileSource(logger *logrus.Logger, path string) *FileSource {
	return &FileSource{
		logger: logger,
		path:   path,
	}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) (*Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &AcquisitionError{Source: s.Name(), Err: fmt.Errorf("failed to read job file: %w", err)}
	}

	records, err := DecodeJobs(data, s.logger)
	if err != nil {
		return nil, &AcquisitionError{Source: s.Name(), Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"path": s.path,
		"jobs": len(records),
	}).Info("Loaded jobs from file")

	return &Dataset{Records: records, Origin: s.Name()}, nil
}
