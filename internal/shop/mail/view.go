package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templates embed.FS

// Templates is the embedded set of email views.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// FSRenderer renders "<name>.html" views from an fs.FS. Each view must
// define a "subject" and a "body" template. Parsed views are cached.
type FSRenderer struct {
	fs fs.FS

	mu    sync.Mutex
	views map[string]*template.Template
}

func NewFSRenderer(fsys fs.FS) *FSRenderer {
	return &FSRenderer{fs: fsys, views: map[string]*template.Template{}}
}

func (r *FSRenderer) Render(_ context.Context, name string, element TemplateElement, data any) (string, error) {
	tmpl, err := r.view(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, string(element), data); err != nil {
		return "", err
	}
	out := buf.String()
	if element == ElementSubject {
		out = strings.TrimSpace(out)
	}
	return out, nil
}

func (r *FSRenderer) view(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.views[name]; ok {
		return t, nil
	}

	// Names become file names, so keep them to a safe alphabet.
	if err := validateName(name); err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).ParseFS(r.fs, name+".html")
	if err != nil {
		return nil, err
	}
	for _, el := range []TemplateElement{ElementSubject, ElementBody} {
		if tmpl.Lookup(string(el)) == nil {
			return nil, fmt.Errorf("view %s: missing %s template", name, el)
		}
	}

	r.views[name] = tmpl
	return tmpl, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty view name")
	}
	for _, c := range name {
		if c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		return fmt.Errorf("invalid character %q in view name: %s", c, name)
	}
	return nil
}
