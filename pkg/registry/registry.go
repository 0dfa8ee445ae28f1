// Package registry loads and serves the answer-pack template registry.
// The registry is read-only after initialization and safe for
// concurrent reads.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ghadfield32/nba-query-engine/internal/models"
)

// Registry is the immutable loaded registry.
type Registry struct {
	version   string
	templates []Template
}

// Load reads, validates, and indexes a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates a registry document against the embedded schema and
// structural invariants, then builds the immutable registry.
func Parse(data []byte) (*Registry, error) {
	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("registry schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid registry document: %s", strings.Join(msgs, "; "))
	}

	var doc AnswerRegistry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	for _, tpl := range doc.Templates {
		if err := checkGroups(tpl); err != nil {
			return nil, fmt.Errorf("template %s: %w", tpl.TemplateID, err)
		}
	}

	return &Registry{
		version:   doc.Version,
		templates: doc.Templates,
	}, nil
}

// Builtin returns the registry compiled into the binary, so the engine
// runs with no external configuration.
func Builtin() (*Registry, error) {
	return Parse([]byte(builtinRegistry))
}

// Version returns the registry document version.
func (r *Registry) Version() string {
	return r.version
}

// Templates returns the templates in document order.
func (r *Registry) Templates() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Select returns the first template matching the intent, entity kind,
// and arity, in document order. The bool reports whether any matched.
func (r *Registry) Select(intent models.Intent, kind models.EntityKind, arity int) (*Template, bool) {
	for i := range r.templates {
		tpl := &r.templates[i]
		if tpl.Intent != string(intent) {
			continue
		}
		if tpl.EntityKind != "" && tpl.EntityKind != string(kind) {
			continue
		}
		if arity < tpl.RequiredEntityArity {
			continue
		}
		return tpl, true
	}
	return nil, false
}

// checkGroups enforces that group indices are contiguous non-negative
// integers starting at 0.
func checkGroups(tpl Template) error {
	seen := map[int]bool{}
	max := -1
	for _, s := range tpl.Steps {
		if s.Group < 0 {
			return fmt.Errorf("negative group index %d", s.Group)
		}
		seen[s.Group] = true
		if s.Group > max {
			max = s.Group
		}
	}
	for g := 0; g <= max; g++ {
		if !seen[g] {
			return fmt.Errorf("group indices not contiguous: missing group %d", g)
		}
	}
	return nil
}
