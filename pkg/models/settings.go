package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// BodyFormat is the Drupal text format applied to the body field
type BodyFormat string

const (
	BodyFormatPlainText      BodyFormat = "plain_text"
	BodyFormatFilteredHTML   BodyFormat = "filtered_html"
	BodyFormatRestrictedHTML BodyFormat = "restricted_html"
	BodyFormatFullHTML       BodyFormat = "full_html"
)

// BodyFormats lists the formats offered by a stock Drupal install
var BodyFormats = []BodyFormat{
	BodyFormatPlainText,
	BodyFormatFilteredHTML,
	BodyFormatRestrictedHTML,
	BodyFormatFullHTML,
}

// Settings holds the connection details for the Drupal site.
// The password is stored in plaintext in the config file.
type Settings struct {
	SiteURL    string        `mapstructure:"site_url" yaml:"site_url"`
	Username   string        `mapstructure:"username" yaml:"username"`
	Password   string        `mapstructure:"password" yaml:"password"`
	NodeType   string        `mapstructure:"node_type" yaml:"node_type"`
	BodyFormat BodyFormat    `mapstructure:"body_format" yaml:"body_format"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"` // 0 leaves the transport default
}

// DefaultSettings returns the settings used before anything is configured
func DefaultSettings() Settings {
	return Settings{
		SiteURL:    "https://example.com",
		NodeType:   "article",
		BodyFormat: BodyFormatRestrictedHTML,
	}
}

// BaseURL returns the site URL without trailing slashes
func (s Settings) BaseURL() string {
	return strings.TrimRight(s.SiteURL, "/")
}

// Validate checks the settings needed to talk to the site
func (s Settings) Validate() error {
	formats := make([]interface{}, len(BodyFormats))
	for i, f := range BodyFormats {
		formats[i] = f
	}

	return validation.ValidateStruct(&s,
		validation.Field(&s.SiteURL, validation.Required, is.URL),
		validation.Field(&s.NodeType, validation.Required),
		validation.Field(&s.BodyFormat, validation.Required, validation.In(formats...)),
		validation.Field(&s.Timeout, validation.Min(time.Duration(0))),
	)
}

// Redacted returns a copy safe for display
func (s Settings) Redacted() Settings {
	if s.Password != "" {
		s.Password = "********"
	}
	return s
}
