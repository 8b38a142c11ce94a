package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a frontmatter block.
const Delimiter = "---"

// ErrMalformed is returned by Split when the header block is not a YAML mapping.
var ErrMalformed = errors.New("malformed frontmatter")

// Split separates the frontmatter block from the body of a note.
//
// Split never loses the body: when the header cannot be parsed it still returns
// an empty, usable Metadata and the correctly located body, together with an
// error wrapping ErrMalformed that callers are expected to log and ignore.
func Split(content string) (*Metadata, string, error) {
	if !strings.HasPrefix(content, Delimiter) {
		return NewMetadata(), content, nil
	}

	raw, body, ok := cutBlock(content)
	if !ok {
		// No opening line or unterminated header, treat the whole text as body
		return NewMetadata(), content, nil
	}
	body = strings.TrimLeftFunc(body, unicode.IsSpace)

	md, err := parseBlock(raw)
	if err != nil {
		return NewMetadata(), body, err
	}
	return md, body, nil
}

// Join renders metadata between delimiter lines followed by a blank line and the body.
func Join(md *Metadata, body string) (string, error) {
	var sb strings.Builder
	sb.WriteString(Delimiter + "\n")

	if md != nil && md.Len() > 0 {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(md.node); err != nil {
			return "", fmt.Errorf("encoding frontmatter: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return "", fmt.Errorf("encoding frontmatter: %w", err)
		}
		sb.WriteString(strings.TrimSpace(buf.String()))
		sb.WriteString("\n")
	}

	sb.WriteString(Delimiter + "\n\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// cutBlock returns the text between the opening delimiter line and the next
// line consisting only of the delimiter, and everything after that line.
// Both lines must be exactly the delimiter, apart from trailing blanks.
func cutBlock(content string) (raw, rest string, ok bool) {
	nl := strings.IndexByte(content, '\n')
	if nl == -1 || !isDelimiterLine(content[:nl]) {
		return "", "", false
	}
	afterOpen := content[nl+1:]

	offset := 0
	for offset <= len(afterOpen) {
		line := afterOpen[offset:]
		end := strings.IndexByte(line, '\n')
		next := len(afterOpen) + 1
		if end != -1 {
			line = line[:end]
			next = offset + end + 1
		}
		if isDelimiterLine(line) {
			raw = afterOpen[:offset]
			if next > len(afterOpen) {
				return raw, "", true
			}
			return raw, afterOpen[next:], true
		}
		offset = next
	}
	return "", "", false
}

func isDelimiterLine(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

func parseBlock(raw string) (*Metadata, error) {
	if strings.TrimSpace(raw) == "" {
		return NewMetadata(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Content) == 0 {
		// Comments only
		return NewMetadata(), nil
	}

	root := doc.Content[0]
	switch {
	case root.Kind == yaml.MappingNode:
		return &Metadata{node: root}, nil
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return NewMetadata(), nil
	default:
		return nil, fmt.Errorf("%w: header is a %s, not a mapping", ErrMalformed, kindName(root.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "mapping"
	}
}
