package drupal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/sync"
)

// Name is the provider name used in configuration.
const Name = "drupal"

// DrupalProvider implements the sync.Provider interface for the Drupal core
// REST module (node resource, json format, basic_auth).
type DrupalProvider struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *logrus.Logger
}

var _ sync.Provider = (*DrupalProvider)(nil)

// NewProvider creates a new DrupalProvider. A nil logger discards debug output.
func NewProvider(settings models.Settings, logger *logrus.Logger) *DrupalProvider {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &DrupalProvider{
		baseURL:  settings.BaseURL(),
		username: settings.Username,
		password: settings.Password,
		client: &http.Client{
			Timeout: settings.Timeout,
		},
		logger: logger,
	}
}

// Name returns the name of the provider.
func (p *DrupalProvider) Name() string {
	return Name
}

// BasicAuth returns the Authorization header value for username and password.
func BasicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// NodeURL returns the canonical URL of a node.
func (p *DrupalProvider) NodeURL(id string) string {
	return fmt.Sprintf("%s/node/%s", p.baseURL, url.PathEscape(id))
}

// endpoint returns the REST URL and method for creating or updating a node.
func (p *DrupalProvider) endpoint(existingID string) (string, string) {
	if existingID != "" {
		return p.NodeURL(existingID) + "?_format=json", http.MethodPatch
	}
	return p.baseURL + "/node?_format=json", http.MethodPost
}

// Sync creates a node, or updates the node req.ExistingID, in a single request.
func (p *DrupalProvider) Sync(ctx context.Context, req *sync.Request) (*sync.Result, error) {
	payload, err := json.Marshal(newNodePayload(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode node: %w", err)
	}

	endpoint, method := p.endpoint(req.ExistingID)
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", BasicAuth(p.username, p.password))

	p.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    endpoint,
	}).Debug("Sending node to Drupal")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		p.logger.WithFields(logrus.Fields{
			"url":    endpoint,
			"status": resp.StatusCode,
		}).Debug("Drupal rejected node")
		return &sync.Result{
			Success: false,
			Message: fmt.Sprintf("%s %d %s", endpoint, resp.StatusCode, string(respBody)),
		}, nil
	}

	id, err := parseNodeID(respBody)
	if err != nil {
		return &sync.Result{
			Success: false,
			Message: fmt.Sprintf("%s %d: %v", endpoint, resp.StatusCode, err),
		}, nil
	}

	return &sync.Result{
		Success: true,
		NodeID:  id,
		NodeURL: p.NodeURL(id),
	}, nil
}
