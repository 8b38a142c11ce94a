package drupal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-drupal-sync/pkg/sync"
)

var errMissingNodeID = errors.New("response has no nid")

// nodePayload is the body of POST /node and PATCH /node/{id} in the
// Drupal REST json format. Fields are lists of {value: ...} items.
type nodePayload struct {
	Type   string        `json:"type"`
	Title  []stringValue `json:"title"`
	Body   []textValue   `json:"body"`
	Status []intValue    `json:"status"`
}

type stringValue struct {
	Value string `json:"value"`
}

type intValue struct {
	Value int `json:"value"`
}

type textValue struct {
	Value  string `json:"value"`
	Format string `json:"format"`
}

func newNodePayload(req *sync.Request) nodePayload {
	status := 0
	if req.Published {
		status = 1
	}
	return nodePayload{
		Type:   req.NodeType,
		Title:  []stringValue{{Value: req.Title}},
		Body:   []textValue{{Value: req.Body, Format: req.BodyFormat}},
		Status: []intValue{{Value: status}},
	}
}

// nodeResponse is the part of a node entity we read back.
type nodeResponse struct {
	Nid []struct {
		Value interface{} `json:"value"`
	} `json:"nid"`
}

// parseNodeID extracts nid[0].value, which Drupal sends as a number but
// older or decorated sites may send as a string.
func parseNodeID(data []byte) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var node nodeResponse
	if err := decoder.Decode(&node); err != nil {
		return "", fmt.Errorf("failed to parse node response: %w", err)
	}
	if len(node.Nid) == 0 {
		return "", errMissingNodeID
	}

	switch v := node.Nid[0].Value.(type) {
	case json.Number:
		return v.String(), nil
	case string:
		if v == "" {
			return "", errMissingNodeID
		}
		return v, nil
	default:
		return "", fmt.Errorf("unexpected nid value %v", v)
	}
}
