package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/service"
)

var (
	// ErrSyncFailed is returned when the remote rejects a note.
	ErrSyncFailed = errors.New("sync failed")
	// ErrUnknownProvider is returned when no factory is registered for the configured provider.
	ErrUnknownProvider = errors.New("unsupported or unregistered provider")
)

const unknownSyncError = "unknown sync error"

// ProviderFactory is a function that creates a Provider instance.
type ProviderFactory func(settings models.Settings) Provider

// Syncer publishes notes to a remote site and records the result in the note.
type Syncer struct {
	svc               *service.Service
	settings          models.Settings
	providerFactories map[string]ProviderFactory
	notifier          Notifier
}

// NewSyncer creates a new Syncer.
func NewSyncer(svc *service.Service, settings models.Settings) *Syncer {
	return &Syncer{
		svc:               svc,
		settings:          settings,
		providerFactories: make(map[string]ProviderFactory),
		notifier:          NotifierFunc(func(string) {}),
	}
}

// RegisterProvider registers a provider factory for a given provider name.
func (s *Syncer) RegisterProvider(name string, factory ProviderFactory) {
	s.providerFactories[name] = factory
}

// SetNotifier sets where progress messages go.
func (s *Syncer) SetNotifier(n Notifier) {
	if n == nil {
		n = NotifierFunc(func(string) {})
	}
	s.notifier = n
}

// Publish sends the note at path to the named provider, creating the remote
// node on first publish and updating it afterwards. On success the node id and
// URL are written back into the note's frontmatter. On failure the note file
// is left untouched.
//
// Concurrent publishes of the same note are not coordinated; the last write wins.
func (s *Syncer) Publish(ctx context.Context, providerName, path string, published bool) (*Report, error) {
	factory, ok := s.providerFactories[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerName)
	}
	provider := factory(s.settings)

	note, err := s.svc.ReadNote(path)
	if err != nil {
		return nil, err
	}

	existingID := note.Remote.NodeID
	if existingID != "" {
		s.notifier.Notify("Updating note in Drupal...")
	} else {
		s.notifier.Notify("Publishing note to Drupal...")
	}

	log := s.svc.Logger.WithFields(logrus.Fields{
		"provider":  provider.Name(),
		"path":      path,
		"node_id":   existingID,
		"published": published,
	})
	log.Debug("Syncing note")

	result, err := provider.Sync(ctx, &Request{
		NodeType:   s.settings.NodeType,
		Title:      note.Title,
		Body:       note.Body,
		BodyFormat: string(s.settings.BodyFormat),
		Published:  published,
		ExistingID: existingID,
	})
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Sync failed: %v", err))
		return nil, fmt.Errorf("provider %s sync failed: %w", provider.Name(), err)
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = unknownSyncError
		}
		log.WithField("reason", msg).Warn("Remote rejected note")
		s.notifier.Notify("Sync failed: " + msg)
		return nil, fmt.Errorf("%w: %s", ErrSyncFailed, msg)
	}

	remote := models.RemoteMetadata{NodeID: result.NodeID, NodeURL: result.NodeURL}
	if err := service.SetRemote(note, remote); err != nil {
		return nil, err
	}
	if err := s.svc.SaveNote(note); err != nil {
		// The node exists remotely but the note does not know about it
		log.WithError(err).WithField("new_node_id", result.NodeID).Error("Synced note could not be updated")
		s.notifier.Notify(fmt.Sprintf("Sync failed: %v", err))
		return nil, err
	}

	log.WithField("node_id", result.NodeID).Info("Synced note")
	s.notifier.Notify("Note synced to Drupal!")

	return &Report{
		Provider:  provider.Name(),
		Path:      path,
		Title:     note.Title,
		Created:   existingID == "",
		Published: published,
		NodeID:    result.NodeID,
		NodeURL:   result.NodeURL,
	}, nil
}

// Status reports what the note at path is linked to, without contacting the remote.
func (s *Syncer) Status(path string) (*models.Note, error) {
	return s.svc.ReadNote(path)
}
