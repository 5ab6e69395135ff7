// Package templates manages the credential subject templates a user picks from
// when issuing a credential.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jask/petrus/internal/apperr"
)

// Template is one claim file in the catalog directory.
type Template struct {
	Name string // file stem
	Path string
}

// Title is the human readable name, e.g. "University Degree".
func (t Template) Title() string { return strings.Join(words(t.Name), " ") }

// CredentialType is the CamelCase credential type, e.g. "UniversityDegree".
func (t Template) CredentialType() string { return strings.Join(words(t.Name), "") }

func words(stem string) []string {
	parts := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for i, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return parts
}

// Catalog lists and loads templates from Dir.
type Catalog struct {
	Dir string
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// List returns the templates sorted by name. A missing directory is empty.
func (c *Catalog) List() ([]Template, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var out []Template
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		out = append(out, Template{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(c.Dir, e.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load reads the claim object at path as JSON or YAML by extension.
func (c *Catalog) Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	var claims map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &claims)
	default:
		err = json.Unmarshal(data, &claims)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalidInput, fmt.Sprintf("template %s is not a claim object: %v", filepath.Base(path), err))
	}
	if claims == nil {
		return nil, apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("template %s is empty", filepath.Base(path)))
	}
	return claims, nil
}

// Scratch copies t to a temporary file the user can edit freely. The
// returned cleanup removes it.
func (c *Catalog) Scratch(t Template) (string, func(), error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return "", nil, fmt.Errorf("read template: %w", err)
	}
	f, err := os.CreateTemp("", "petrus-"+t.Name+"-*"+filepath.Ext(t.Path))
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}

var defaults = map[string]string{
	"university_degree.json": `{
  "name": "Alice Smith",
  "degree": {
    "type": "BachelorDegree",
    "name": "Bachelor of Science and Arts"
  },
  "university": "Example University",
  "graduationYear": 2024
}
`,
	"driver_license.yaml": `name: Alice Smith
licenseNumber: D1234567
categories:
  - B
  - A1
birthDate: "1990-04-12"
expires: "2031-04-12"
`,
}

// SeedDefaults writes the built-in templates when the directory holds none.
func (c *Catalog) SeedDefaults() error {
	existing, err := c.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir templates: %w", err)
	}
	for name, body := range defaults {
		if err := os.WriteFile(filepath.Join(c.Dir, name), []byte(body), 0o644); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}
