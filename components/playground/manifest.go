package playground

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current catalog manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML/JSON document overriding catalog entries
// (labels, default statuses, payload schemas).
type CatalogManifest struct {
	Version string             `json:"version" yaml:"version"`
	Name    string             `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []WidgetDefinition `json:"widgets" yaml:"widgets"`
	Source  string             `json:"-" yaml:"-"`
}

// LoadManifestFile reads a manifest from disk and registers it against the registry.
func (r *Registry) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers every definition of a decoded manifest.
// Entries replace the built-in definition for the same key.
func (r *Registry) LoadManifestDocument(doc *CatalogManifest) error {
	if doc == nil {
		return fmt.Errorf("playground: manifest document is nil")
	}
	for _, def := range doc.Widgets {
		if err := r.RegisterDefinition(def); err != nil {
			return fmt.Errorf("playground: register widget %s from %s: %w", def.Key, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("playground: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("playground: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("playground: manifest is empty")
		}
		return nil, fmt.Errorf("playground: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("playground: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[WidgetKey]struct{}, len(doc.Widgets))
	for idx, def := range doc.Widgets {
		if def.Key == "" {
			return fmt.Errorf("playground: manifest widget at index %d is missing key", idx)
		}
		if !def.Key.Valid() {
			return fmt.Errorf("playground: manifest widget %q is not a known widget key", def.Key)
		}
		if def.Name == "" {
			return fmt.Errorf("playground: manifest widget %s missing name", def.Key)
		}
		if _, exists := seen[def.Key]; exists {
			return fmt.Errorf("playground: manifest duplicates widget key %s", def.Key)
		}
		seen[def.Key] = struct{}{}
	}
	return nil
}

// EncodeManifest writes doc as YAML.
func EncodeManifest(w io.Writer, doc *CatalogManifest) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("playground: encode manifest: %w", err)
	}
	return encoder.Close()
}
