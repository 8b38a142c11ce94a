package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-drupal-sync/pkg/frontmatter"
	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// TitleFromPath derives the node title from a note's file name.
// macOS reports decomposed file names, so the result is NFC normalized.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	return norm.NFC.String(title)
}

// ReadNote reads and splits a note file. A malformed header is logged and
// treated as empty; the body is always returned.
func (s *Service) ReadNote(path string) (*models.Note, error) {
	content, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	contentStr := string(content)

	md, body, err := frontmatter.Split(contentStr)
	if err != nil {
		if !errors.Is(err, frontmatter.ErrMalformed) {
			return nil, fmt.Errorf("parse note: %w", err)
		}
		s.Logger.WithField("path", path).WithError(err).Warn("Ignoring unparsable frontmatter")
	}

	return &models.Note{
		Path:     path,
		Title:    TitleFromPath(path),
		Content:  contentStr,
		Metadata: md,
		Body:     body,
		Remote:   remoteFromMetadata(md),
	}, nil
}

// SaveNote joins the note's metadata and body and overwrites the file
func (s *Service) SaveNote(note *models.Note) error {
	content, err := frontmatter.Join(note.Metadata, note.Body)
	if err != nil {
		return fmt.Errorf("build note: %w", err)
	}
	if err := s.writeFile(note.Path, []byte(content)); err != nil {
		return err
	}
	note.Content = content

	s.Logger.WithFields(logrus.Fields{
		"path":    note.Path,
		"node_id": note.Remote.NodeID,
	}).Debug("Saved note")
	return nil
}
