package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	DefaultLayout = "layouts/base.html"
	FragmentsDir  = "templates"
	layoutName    = "layout"
)

// PageData is the value every page is executed with. An empty Greeting means
// no greeting and the heading is left out.
type PageData struct {
	Title      string
	Greeting   string
	RouteName  string
	Env        string
	LiveReload bool
}

// Composer renders pages from a view tree: a page under pages/ fills the
// slots of its layout and may include any fragment under templates/.
type Composer struct {
	views fs.FS
	funcs template.FuncMap
}

func NewComposer(views fs.FS, funcs template.FuncMap) *Composer {
	return &Composer{views: views, funcs: funcs}
}

// Compose renders page (a path under pages/ without extension) into w. The
// output is buffered so nothing reaches w when rendering fails.
func (c *Composer) Compose(w io.Writer, page string, data PageData) error {
	tmpl, err := c.Parse(page)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplate, page, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

// Parse builds the template set for page without executing it.
func (c *Composer) Parse(page string) (*template.Template, error) {
	pagePath := PagePath(page)
	content, err := fs.ReadFile(c.views, pagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", pagePath, ErrPageNotFound)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, pagePath, err)
	}

	layoutPath := LayoutDirective(content)
	if layoutPath == "" {
		layoutPath = DefaultLayout
	}
	layout, err := fs.ReadFile(c.views, layoutPath)
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %w", ErrTemplate, layoutPath, err)
	}

	tmpl := template.New(layoutPath).Funcs(c.funcs)
	if _, err := tmpl.Parse(string(layout)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	if _, err := tmpl.New(pagePath).Parse(string(content)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	fragments, err := c.Fragments()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	for _, fragment := range fragments {
		src, err := fs.ReadFile(c.views, fragment)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, fragment, err)
		}
		if _, err := tmpl.New(fragment).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
		}
	}

	return tmpl, nil
}

// Fragments lists the shared templates in lexical order.
func (c *Composer) Fragments() ([]string, error) {
	var fragments []string
	err := fs.WalkDir(c.views, FragmentsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == FragmentsDir {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".html") {
			fragments = append(fragments, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(fragments)
	return fragments, nil
}

func PagePath(page string) string {
	return path.Join("pages", strings.Trim(page, "/")+".html")
}

// LayoutDirective returns the layout named by the first
// `<!-- layout: path -->` line of content, or "".
func LayoutDirective(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "<!-- layout:") && strings.HasSuffix(line, "-->") {
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "<!-- layout:"), "-->"))
		}
	}
	return ""
}
