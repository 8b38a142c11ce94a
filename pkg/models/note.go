package models

import "github.com/mattsolo1/grove-drupal-sync/pkg/frontmatter"

// Frontmatter keys owned by drupal-sync
const (
	NodeIDKey  = "drupal_node_id"
	NodeURLKey = "drupal_node_url"
)

// RemoteMetadata is the link between a note and its Drupal node
type RemoteMetadata struct {
	NodeID  string `json:"node_id,omitempty"`
	NodeURL string `json:"node_url,omitempty"`
}

// Linked reports whether the note already has a node on the site
func (r RemoteMetadata) Linked() bool {
	return r.NodeID != ""
}

// Note represents a note file split into its header and body
type Note struct {
	Path     string                `json:"path"`
	Title    string                `json:"title"`
	Content  string                `json:"-"` // text as read from disk
	Metadata *frontmatter.Metadata `json:"-"`
	Body     string                `json:"-"`
	Remote   RemoteMetadata        `json:"remote"`
}
