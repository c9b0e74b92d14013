package greetsite

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/samrai/greetsite/core"
)

type RuntimeConfig struct {
	Env        string
	Port       int
	ConfigPath string
}

func (c RuntimeConfig) configPath() string {
	if c.ConfigPath == "" {
		return core.ConfigFile
	}
	return c.ConfigPath
}

var ListenAndServe = http.ListenAndServe
var Exit = os.Exit

const immutableCache = "public, max-age=31536000, immutable"

// BuildServer wires the static asset routes, the dev live reload endpoint and
// the page router, and returns the listen address with the root handler.
func BuildServer(cfg RuntimeConfig) (string, http.Handler) {
	config := core.LoadConfig(cfg.configPath())
	logger := core.NewLogger(*config, os.Stderr)
	addr, handler, _ := buildServer(cfg, config, logger)
	return addr, handler
}

func buildServer(cfg RuntimeConfig, config *core.Config, logger *slog.Logger) (string, http.Handler, core.LiveReloaderInterface) {
	mux := http.NewServeMux()
	publicDir := config.PublicDir
	cacheStaticDir := filepath.Join(config.OutputDir, "static")

	var reloader core.LiveReloaderInterface
	if cfg.Env == "dev" {
		setupDevStaticRoutes(mux, publicDir)

		reloader = core.NewLiveReloader()
		mux.HandleFunc(core.ReloadPath, reloader.Handler)
	} else {
		mux.Handle("/static/", makeStaticHandler(publicDir, cacheStaticDir))
		setupRootFiles(mux, publicDir, immutableCache)
	}

	mux.Handle("/", core.NewRouter(*config, core.RuntimeContext{Env: cfg.Env, Logger: logger}))

	return fmt.Sprintf(":%d", cfg.Port), core.LogRequests(logger, mux), reloader
}

func Start(cfg RuntimeConfig) {
	fmt.Println("Starting greetsite in", cfg.Env, "mode...")

	config := core.LoadConfig(cfg.configPath())
	logger := core.NewLogger(*config, os.Stderr)
	addr, handler, reloader := buildServer(cfg, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		watcher, err := core.NewWatcher(watchRoots(config), reloader.Notify, logger)
		if err != nil {
			logger.Warn("live reload watcher disabled", "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	fmt.Printf("✅ greetsite running at http://localhost:%d\n", cfg.Port)
	if err := ListenAndServe(addr, handler); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Server failed:", err)
		Exit(1)
	}
}

func watchRoots(config *core.Config) []string {
	return []string{config.ViewsDir, config.PublicDir}
}

func setupDevStaticRoutes(mux *http.ServeMux, publicDir string) {
	fileServer := http.FileServer(http.Dir(publicDir))
	mux.Handle("/static/", http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fileServer.ServeHTTP(w, r)
	})))
	setupRootFiles(mux, publicDir, "no-store")
}

func setupRootFiles(mux *http.ServeMux, publicDir, cacheControl string) {
	for _, name := range []string{"favicon.ico", "robots.txt"} {
		file := filepath.Join(publicDir, name)
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", cacheControl)
			http.ServeFile(w, r, file)
		})
	}
}

// makeStaticHandler serves /static/ in prod: the gzipped build output when the
// client accepts it, then the plain build output, then the public file.
func makeStaticHandler(publicDir, cacheDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.TrimPrefix(r.URL.Path, "/static/")
		if trimmed == "" || strings.Contains(trimmed, "..") {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		rel := filepath.FromSlash(trimmed)
		cachedFile := filepath.Join(cacheDir, rel)

		if acceptsGzip(r) {
			gzipFile := cachedFile + ".gz"
			if fileExists(gzipFile) {
				w.Header().Set("Content-Type", detectMimeType(cachedFile))
				w.Header().Set("Content-Encoding", "gzip")
				w.Header().Set("Vary", "Accept-Encoding")
				serveFileWithHeaders(w, r, gzipFile, immutableCache)
				return
			}
		}

		if fileExists(cachedFile) {
			serveFileWithHeaders(w, r, cachedFile, immutableCache)
			return
		}

		publicFile := filepath.Join(publicDir, rel)
		if fileExists(publicFile) {
			serveFileWithHeaders(w, r, publicFile, immutableCache)
			return
		}

		http.NotFound(w, r)
	})
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, path, cacheControl string) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", detectMimeType(path))
	}
	w.Header().Set("Cache-Control", cacheControl)
	http.ServeFile(w, r, path)
}

func detectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ico":
		return "image/x-icon"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
