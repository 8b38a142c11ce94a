package sync

import "context"

// Provider defines the interface for a remote site that notes are published to.
type Provider interface {
	// Name returns the provider's name (e.g., "drupal").
	Name() string
	// Sync creates the remote entity, or updates it when req.ExistingID is set.
	// A rejection by the remote is reported through Result, not as an error;
	// errors are reserved for transport failures.
	Sync(ctx context.Context, req *Request) (*Result, error)
}

// Request describes one create or update of a remote entity.
type Request struct {
	NodeType   string
	Title      string
	Body       string
	BodyFormat string
	Published  bool
	ExistingID string // empty means create
}

// Result is the outcome of a single Sync call.
type Result struct {
	Success bool
	Message string // set when Success is false
	NodeID  string
	NodeURL string
}

// Report summarizes a publish for display.
type Report struct {
	Provider  string `json:"provider"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Created   bool   `json:"created"`
	Published bool   `json:"published"`
	NodeID    string `json:"node_id"`
	NodeURL   string `json:"node_url"`
}

// Notifier shows short transient messages to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) {
	f(message)
}
