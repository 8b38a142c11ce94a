package service

import (
	"fmt"

	"github.com/mattsolo1/grove-drupal-sync/pkg/frontmatter"
	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
)

// remoteFromMetadata reads the reserved keys from a note header
func remoteFromMetadata(md *frontmatter.Metadata) models.RemoteMetadata {
	return models.RemoteMetadata{
		NodeID:  md.GetString(models.NodeIDKey),
		NodeURL: md.GetString(models.NodeURLKey),
	}
}

// SetRemote records the node id and URL in the note header, leaving other keys as they are.
// The id is written as a plain scalar so numeric ids stay numbers.
func SetRemote(note *models.Note, remote models.RemoteMetadata) error {
	note.Metadata.SetScalar(models.NodeIDKey, remote.NodeID)
	if err := note.Metadata.Set(models.NodeURLKey, remote.NodeURL); err != nil {
		return fmt.Errorf("set %s: %w", models.NodeURLKey, err)
	}
	note.Remote = remote
	return nil
}

// Unlink removes the reserved keys from the note file so that the next
// publish creates a new node. It reports whether anything was removed.
func (s *Service) Unlink(path string) (bool, error) {
	note, err := s.ReadNote(path)
	if err != nil {
		return false, err
	}

	removedID := note.Metadata.Delete(models.NodeIDKey)
	removedURL := note.Metadata.Delete(models.NodeURLKey)
	if !removedID && !removedURL {
		return false, nil
	}

	note.Remote = models.RemoteMetadata{}
	if err := s.SaveNote(note); err != nil {
		return false, err
	}
	s.Logger.WithField("path", path).Info("Removed Drupal link from note")
	return true, nil
}
