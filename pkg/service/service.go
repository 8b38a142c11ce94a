package service

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Service reads and writes notes on a filesystem
type Service struct {
	Fs     afero.Fs
	Logger *logrus.Logger
}

// New creates a note service. A nil fs uses the OS filesystem.
func New(fs afero.Fs, logger *logrus.Logger) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Service{
		Fs:     fs,
		Logger: logger,
	}
}

// writeFile replaces the content of an existing file, keeping its permissions
func (s *Service) writeFile(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := s.Fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(s.Fs, path, content, mode); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}
