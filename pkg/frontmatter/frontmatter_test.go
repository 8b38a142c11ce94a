package frontmatter

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta map[string]interface{}
		wantBody string
		wantErr  bool
	}{
		{
			name:     "no frontmatter",
			content:  "# Just a title\n\nSome content.",
			wantMeta: map[string]interface{}{},
			wantBody: "# Just a title\n\nSome content.",
		},
		{
			name:     "simple frontmatter",
			content:  "---\ntitle: X\n---\nHello",
			wantMeta: map[string]interface{}{"title": "X"},
			wantBody: "Hello",
		},
		{
			name: "body leading whitespace trimmed",
			content: `---
drupal_node_id: 12
tags: [a, b]
---


# Heading

Text`,
			wantMeta: map[string]interface{}{
				"drupal_node_id": 12,
				"tags":           []interface{}{"a", "b"},
			},
			wantBody: "# Heading\n\nText",
		},
		{
			name:     "unterminated header",
			content:  "---\ntitle: X\nno closing line",
			wantMeta: map[string]interface{}{},
			wantBody: "---\ntitle: X\nno closing line",
		},
		{
			name:     "thematic break is not a header",
			content:  "-----\nIntro\n---\nmore",
			wantMeta: map[string]interface{}{},
			wantBody: "-----\nIntro\n---\nmore",
		},
		{
			name:     "text after opening dashes is not a header",
			content:  "--- notes\nIntro\n---\nmore",
			wantMeta: map[string]interface{}{},
			wantBody: "--- notes\nIntro\n---\nmore",
		},
		{
			name:     "crlf opening line",
			content:  "---\r\ntitle: X\r\n---\r\nHello",
			wantMeta: map[string]interface{}{"title": "X"},
			wantBody: "Hello",
		},
		{
			name:     "all unicode whitespace trimmed from body",
			content:  "---\na: 1\n---\n\f\v\u00a0Body",
			wantMeta: map[string]interface{}{"a": 1},
			wantBody: "Body",
		},
		{
			name:     "invalid yaml keeps body",
			content:  "---\nid: test\ntitle: [invalid\n---\n\nBody",
			wantMeta: map[string]interface{}{},
			wantBody: "Body",
			wantErr:  true,
		},
		{
			name:     "scalar header is malformed",
			content:  "---\njust words\n---\nBody",
			wantMeta: map[string]interface{}{},
			wantBody: "Body",
			wantErr:  true,
		},
		{
			name:     "empty header",
			content:  "---\n---\n\nBody",
			wantMeta: map[string]interface{}{},
			wantBody: "Body",
		},
		{
			name:     "dashes inside a value are not a delimiter",
			content:  "---\ntitle: a---b\n---\nBody --- with dashes",
			wantMeta: map[string]interface{}{"title": "a---b"},
			wantBody: "Body --- with dashes",
		},
		{
			name:     "closing delimiter at end of text",
			content:  "---\ntitle: X\n---",
			wantMeta: map[string]interface{}{"title": "X"},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, body, err := Split(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Split() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformed) {
				t.Errorf("Split() error = %v, want ErrMalformed", err)
			}
			if md == nil {
				t.Fatal("Split() returned nil metadata")
			}
			got, err := md.Map()
			if err != nil {
				t.Fatalf("Map() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantMeta) {
				t.Errorf("Split() metadata = %#v, want %#v", got, tt.wantMeta)
			}
			if body != tt.wantBody {
				t.Errorf("Split() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	md, _, err := Split("---\ntitle: Test Note\naliases: [x]\n---\nignored")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	md.SetScalar("drupal_node_id", "7")
	if err := md.Set("drupal_node_url", "https://example.com/node/7"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := Join(md, "Hello")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	want := `---
title: Test Note
aliases: [x]
drupal_node_id: 7
drupal_node_url: https://example.com/node/7
---

Hello`
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinEmptyMetadata(t *testing.T) {
	got, err := Join(NewMetadata(), "Body")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if want := "---\n---\n\nBody"; got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"title":     "Round Trip Test",
		"count":     3,
		"ratio":     0.5,
		"draft":     true,
		"reference": "123",
		"nested": map[string]interface{}{
			"child": "value",
			"list":  []interface{}{"a", 1, false},
		},
	}
	body := "# Test Content\n\nThis is a test."

	md, err := FromMap(original)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	content, err := Join(md, body)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	parsed, parsedBody, err := Split(content)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	got, err := parsed.Map()
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("Round trip metadata mismatch\noriginal: %#v\nparsed: %#v", original, got)
	}
	if parsedBody != body {
		t.Errorf("Round trip body mismatch\noriginal: %q\nparsed: %q", body, parsedBody)
	}
}

func TestRoundTripPreservesUnknownKeys(t *testing.T) {
	content := `---
zeta: 1
alpha: {inline: true}
when: 2024-01-02
---

Body`
	md, body, err := Split(content)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	out, err := Join(md, body)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if out != content {
		t.Errorf("Join(Split()) = %q, want %q", out, content)
	}
}
