// Package extract reads string fields nested one level deep inside an
// untyped JSON response.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// NotAvailable is returned for any field that cannot be resolved to a string.
const NotAvailable = "Not available"

// ErrEmpty is returned by Parse for blank input.
var ErrEmpty = errors.New("empty response")

// Document is a parsed response tree.
type Document struct {
	root any
}

// Parse decodes text into a generic value tree.
func Parse(text string) (*Document, error) {
	if len(text) == 0 {
		return nil, ErrEmpty
	}
	var root any
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &Document{root: root}, nil
}

// Field resolves $.parent.child. Missing keys, a non-object parent and
// non-string values all yield NotAvailable. parent and child are plain
// member names.
func (d *Document) Field(parent, child string) string {
	if d == nil || parent == "" || child == "" {
		return NotAvailable
	}
	val, err := jsonpath.Get("$."+parent+"."+child, d.root)
	if err != nil {
		return NotAvailable
	}
	s, ok := val.(string)
	if !ok {
		return NotAvailable
	}
	return s
}

// Field parses text and resolves a single field. Unparseable input yields
// NotAvailable.
func Field(text, parent, child string) string {
	doc, err := Parse(text)
	if err != nil {
		return NotAvailable
	}
	return doc.Field(parent, child)
}
