package tpl

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
)

// HTMLTemplateStore loads standalone page templates from a directory tree,
// keyed by filename without extension.
type HTMLTemplateStore struct {
	templates map[string]*template.Template
}

func NewHTMLTemplateStore() *HTMLTemplateStore {
	return &HTMLTemplateStore{templates: make(map[string]*template.Template)}
}

// LoadBaseTemplates parses every *.html under dir.
func (s *HTMLTemplateStore) LoadBaseTemplates(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), ".html")
		t, parseErr := template.ParseFiles(path)
		if parseErr != nil {
			return fmt.Errorf("parsing template %s: %w", path, parseErr)
		}
		s.templates[name] = t
		log.Printf("[INFO] html template loaded: %s", name)
		return nil
	})
}

func (s *HTMLTemplateStore) Render(w io.Writer, name string, data any) error {
	t, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("unknown html template: %s", name)
	}
	return t.Execute(w, data)
}
