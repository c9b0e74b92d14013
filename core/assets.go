package core

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

var assetMediaTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

var osMkdirAllFunc = os.MkdirAll
var osWriteFileFunc = os.WriteFile

// URLResolver maps a route name to its path.
type URLResolver func(name string) (string, error)

func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	return m
}

// MinifyAsset returns the URL of the minified copy of a /static/ CSS or JS
// asset, writing it (and a gzipped twin) under cacheDir/static. Outside prod,
// or on any failure, the original path is returned.
func MinifyAsset(env, assetPath, publicDir, cacheDir string) string {
	if env != "prod" {
		return assetPath
	}

	out, err := BuildAsset(NewMinifier(), strings.TrimPrefix(assetPath, "/static/"), publicDir, cacheDir)
	if err != nil {
		return assetPath
	}
	return out
}

// BuildAsset minifies publicDir/rel into cacheDir/static and returns the
// versioned URL of the result.
func BuildAsset(m *minify.M, rel, publicDir, cacheDir string) (string, error) {
	rel = filepath.ToSlash(rel)
	ext := path.Ext(rel)
	name := strings.TrimSuffix(path.Base(rel), ext)

	mediaType, ok := assetMediaTypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported asset type %q", ext)
	}
	if strings.HasSuffix(name, ".min") {
		return "", fmt.Errorf("asset %s is already minified", rel)
	}

	original, err := os.ReadFile(filepath.Join(publicDir, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := m.Minify(mediaType, &buf, bytes.NewReader(original)); err != nil {
		return "", fmt.Errorf("minify %s: %w", rel, err)
	}
	minified := buf.Bytes()

	minRel := path.Join(path.Dir(rel), name+".min"+ext)
	minPath := filepath.Join(cacheDir, "static", filepath.FromSlash(minRel))

	if err := osMkdirAllFunc(filepath.Dir(minPath), os.ModePerm); err != nil {
		return "", err
	}
	if err := osWriteFileFunc(minPath, minified, 0644); err != nil {
		return "", err
	}
	if err := writeGzip(minPath+".gz", minified); err != nil {
		return "", err
	}

	return fmt.Sprintf("/static/%s?v=%s", minRel, contentHash(minified)), nil
}

func writeGzip(dst string, data []byte) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return osWriteFileFunc(dst, buf.Bytes(), 0644)
}

func contentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:6]
}

// TemplateFuncs is the function map available to every view: the sprig
// library plus the asset and routing helpers.
func TemplateFuncs(env, publicDir, cacheDir string, urls URLResolver) template.FuncMap {
	funcs := sprig.FuncMap()

	versioned := func(p string) string {
		if !strings.HasPrefix(p, "/static/") {
			return p
		}

		rel := filepath.FromSlash(strings.TrimPrefix(p, "/static/"))
		locations := []string{
			filepath.Join(publicDir, rel),
			filepath.Join(cacheDir, "static", rel),
		}

		for _, file := range locations {
			if content, err := os.ReadFile(file); err == nil {
				return fmt.Sprintf("%s?v=%s", p, contentHash(content))
			}
		}

		return p
	}

	funcs["versioned"] = versioned
	funcs["mix"] = func(p string) string {
		if env == "prod" {
			if out := MinifyAsset(env, p, publicDir, cacheDir); out != p {
				return out
			}
		}
		return versioned(p)
	}
	funcs["route"] = func(name string) (string, error) {
		if urls == nil {
			return "", fmt.Errorf("route %q: %w", name, ErrRouteNotFound)
		}
		return urls(name)
	}
	funcs["props"] = func(values ...interface{}) map[string]interface{} {
		if len(values)%2 != 0 {
			panic("props must be called with even number of arguments")
		}
		m := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				panic("props keys must be strings")
			}
			m[key] = values[i+1]
		}
		return m
	}
	funcs["safeHTML"] = func(s interface{}) template.HTML {
		switch val := s.(type) {
		case template.HTML:
			return val
		case string:
			return template.HTML(val)
		default:
			return ""
		}
	}

	return funcs
}
