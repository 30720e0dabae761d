package site

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	buildererrors "git.home.luguber.info/inful/pagemill/internal/errors"
)

// Templates holds the parsed layout set. Every layout is a clone of the base
// template plus one layout file, so layouts share the surrounding document
// shell and only define the "content" block.
type Templates struct {
	layouts map[string]*template.Template
}

// LoadTemplates parses layouts from themeDir, or the embedded defaults when
// themeDir is empty. A theme directory must contain base.html; every other
// *.html file becomes a layout named after its file name.
func LoadTemplates(themeDir string) (*Templates, error) {
	if themeDir == "" {
		return loadEmbeddedTemplates()
	}
	return loadThemeTemplates(themeDir)
}

func loadEmbeddedTemplates() (*Templates, error) {
	sources := map[string]string{
		"post": postTemplate,
		"page": pageTemplate,
		"list": listTemplate,
		"tags": tagsTemplate,
	}
	base, err := template.New("base").Funcs(templateFuncs).Parse(baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse embedded base template: %w", err)
	}
	t := &Templates{layouts: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base template: %w", err)
		}
		if _, err := clone.Parse(src); err != nil {
			return nil, fmt.Errorf("parse embedded layout %q: %w", name, err)
		}
		t.layouts[name] = clone
	}
	return t, nil
}

func loadThemeTemplates(themeDir string) (*Templates, error) {
	basePath := filepath.Join(themeDir, "base.html")
	baseSrc, err := os.ReadFile(basePath)
	if err != nil {
		return nil, buildererrors.MissingTemplate("base", basePath)
	}
	base, err := template.New("base").Funcs(templateFuncs).Parse(string(baseSrc))
	if err != nil {
		return nil, buildererrors.Wrap(err, buildererrors.CategoryTemplate, "parse base template").WithPath(basePath)
	}

	entries, err := os.ReadDir(themeDir)
	if err != nil {
		return nil, buildererrors.IOFailure(themeDir, err)
	}

	t := &Templates{layouts: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") || name == "base.html" {
			continue
		}
		src, err := os.ReadFile(filepath.Join(themeDir, name))
		if err != nil {
			return nil, buildererrors.IOFailure(filepath.Join(themeDir, name), err)
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base template: %w", err)
		}
		layout := strings.TrimSuffix(name, ".html")
		if _, err := clone.Parse(string(src)); err != nil {
			return nil, buildererrors.Wrap(err, buildererrors.CategoryTemplate, "parse layout").WithPath(filepath.Join(themeDir, name))
		}
		t.layouts[layout] = clone
	}
	if len(t.layouts) == 0 {
		return nil, buildererrors.New(buildererrors.CategoryTemplate, "theme contains no layouts").WithPath(themeDir)
	}
	return t, nil
}

// Has reports whether a layout is known.
func (t *Templates) Has(layout string) bool {
	_, ok := t.layouts[layout]
	return ok
}

// Render executes the named layout with the given data.
func (t *Templates) Render(w io.Writer, layout string, data any) error {
	tpl, ok := t.layouts[layout]
	if !ok {
		return buildererrors.MissingTemplate(layout, "")
	}
	return tpl.Execute(w, data)
}

var templateFuncs = template.FuncMap{
	"dateISO":   func(d interface{ Format(string) string }) string { return d.Format("2006-01-02") },
	"dateHuman": func(d interface{ Format(string) string }) string { return d.Format("January 2, 2006") },
}

// Embedded default layouts. A theme directory replaces the whole set.
const baseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ if .Title }}{{ .Title }} | {{ end }}{{ .Site.Title }}</title>
  {{ if .Description }}<meta name="description" content="{{ .Description }}">{{ end }}
  <link rel="alternate" type="application/atom+xml" href="{{ .Site.BaseURL }}/feed.xml" title="{{ .Site.Title }}">
</head>
<body>
  <header>
    <nav>
      <a href="{{ .Site.BaseURL }}/">{{ .Site.Title }}</a>
      <a href="{{ .Site.BaseURL }}/tags/">Tags</a>
    </nav>
  </header>
  <main>
    {{ block "content" . }}{{ end }}
  </main>
  <footer>
    <p>{{ .Site.Title }}{{ if .Site.Author }} &middot; {{ .Site.Author }}{{ end }}</p>
  </footer>
</body>
</html>`

const postTemplate = `{{ define "content" }}
<article>
  <header>
    <h1>{{ .Title }}</h1>
    <p><time datetime="{{ dateISO .Date }}">{{ dateHuman .Date }}</time></p>
    {{ if .Tags }}
    <ul class="tags">
      {{ range .Tags }}<li><a href="{{ $.Site.BaseURL }}/tags/{{ . }}/">{{ . }}</a></li>{{ end }}
    </ul>
    {{ end }}
  </header>
  <div class="content">
    {{ .Content }}
  </div>
</article>
{{ end }}`

const pageTemplate = `{{ define "content" }}
<article>
  <h1>{{ .Title }}</h1>
  <div class="content">
    {{ .Content }}
  </div>
</article>
{{ end }}`

const listTemplate = `{{ define "content" }}
<section>
  <h1>{{ .Title }}</h1>
  <ul class="post-list">
    {{ range .Items }}
    <li>
      <time datetime="{{ dateISO .Date }}">{{ dateISO .Date }}</time>
      <a href="{{ .Permalink }}">{{ .Title }}</a>
      {{ if .Description }}<p>{{ .Description }}</p>{{ end }}
    </li>
    {{ end }}
  </ul>
</section>
{{ end }}`

const tagsTemplate = `{{ define "content" }}
<section>
  <h1>{{ .Title }}</h1>
  <ul class="tag-list">
    {{ range .TagLinks }}
    <li><a href="{{ .Permalink }}">{{ .Name }}</a> ({{ .Count }})</li>
    {{ end }}
  </ul>
</section>
{{ end }}`
