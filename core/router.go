package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/samrai/greetsite/resources"
)

const (
	RouteIndex     = "index"
	RouteDashboard = "admin-dashboard"
	notFoundPage   = "errors/404"
)

type RuntimeContext struct {
	Env    string
	Logger *slog.Logger
}

// Route binds a named path to a page. Data builds the page's values for a
// request; nil means the page is static.
type Route struct {
	Name string
	Path string
	Page string
	Data func(req *http.Request) PageData
}

type Router struct {
	config   Config
	env      string
	logger   *slog.Logger
	routes   []Route
	composer *Composer
}

var NewRouter = func(config Config, ctx RuntimeContext) http.Handler {
	return NewPageRouter(config, ctx)
}

func NewPageRouter(config Config, ctx RuntimeContext) *Router {
	logger := ctx.Logger
	if logger == nil {
		logger = NewLogger(config, os.Stderr)
	}

	r := &Router{
		config: config,
		env:    ctx.Env,
		logger: logger,
	}
	r.routes = r.defaultRoutes()

	views := resources.Views()
	if config.ViewsDir != "" {
		if info, err := os.Stat(config.ViewsDir); err == nil && info.IsDir() {
			views = os.DirFS(config.ViewsDir)
		} else {
			logger.Warn("views directory not found, using embedded views", "viewsDir", config.ViewsDir)
		}
	}
	r.composer = NewComposer(views, TemplateFuncs(ctx.Env, config.PublicDir, config.OutputDir, r.URL))

	return r
}

func (r *Router) defaultRoutes() []Route {
	return []Route{
		{
			Name: RouteIndex,
			Path: "/",
			Page: "user/home",
			Data: r.greetingData,
		},
		{
			Name: RouteDashboard,
			Path: "/dashboard",
			Page: "admin/dashboard",
		},
	}
}

func (r *Router) greetingData(req *http.Request) PageData {
	data := r.baseData(RouteIndex)

	greeting, err := Greet(r.config.GreetingName)
	if err != nil {
		r.logger.Warn("greeting unavailable", "name", r.config.GreetingName, "error", err)
		return data
	}
	data.Greeting = greeting
	return data
}

func (r *Router) baseData(routeName string) PageData {
	return PageData{
		Title:      r.config.Title,
		RouteName:  routeName,
		Env:        r.env,
		LiveReload: r.env == "dev",
	}
}

func (r *Router) Routes() []Route {
	return r.routes
}

func (r *Router) Composer() *Composer {
	return r.composer
}

// URL returns the path of the named route.
func (r *Router) URL(name string) (string, error) {
	for _, route := range r.routes {
		if route.Name == name {
			return route.Path, nil
		}
	}
	return "", fmt.Errorf("route %q: %w", name, ErrRouteNotFound)
}

func (r *Router) match(p string) (Route, bool) {
	p = "/" + strings.Trim(p, "/")
	for _, route := range r.routes {
		if route.Path == p {
			return route, true
		}
	}
	return Route{}, false
}

// Render writes the route's page for req into buf.
func (r *Router) Render(buf *bytes.Buffer, route Route, req *http.Request) error {
	data := r.baseData(route.Name)
	if route.Data != nil {
		data = route.Data(req)
	}
	return r.composer.Compose(buf, route.Page, data)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	route, ok := r.match(req.URL.Path)
	if !ok {
		r.serveNotFound(w, req)
		return
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, route, req); err != nil {
		r.logger.Error("render failed", "route", route.Name, "error", err)
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if r.config.DebugHeaders {
		w.Header().Set("X-Greetsite-Route", route.Name)
	}

	etag := generateETag(buf.Bytes())
	w.Header().Set("ETag", etag)
	if match := req.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	buf.WriteTo(w)
}

func (r *Router) serveNotFound(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	err := r.composer.Compose(&buf, notFoundPage, r.baseData(""))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrPageNotFound) {
			r.logger.Error("render failed", "page", notFoundPage, "error", err)
		}
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	buf.WriteTo(w)
}

func generateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `W/"` + hex.EncodeToString(sum[:])[:16] + `"`
}
