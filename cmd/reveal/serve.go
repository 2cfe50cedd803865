package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// indexHTML is the demo page served at the root. The wasm program binds the
// elements carrying data-animation.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>reveal</title>
    <style>
        body { opacity: 0; font-family: sans-serif; margin: 0; }
        section { min-height: 90vh; display: flex; align-items: center; justify-content: center; }
        .typed::after { content: "|"; animation: blink 1s step-end infinite; }
        .typed.hideBlink::after { visibility: hidden; }
        .reveal-fade-up { transform: translateY(0); }
        @keyframes blink { 50% { opacity: 0; } }
    </style>
    <script src="wasm_exec.js"></script>
    <script>
        const go = new Go();
        WebAssembly.instantiateStreaming(fetch("bundle.wasm"), go.importObject).then((result) => {
            go.run(result.instance);
        });
        const reload = new WebSocket("ws://" + location.host + "/livereload");
        reload.onmessage = () => location.reload();
    </script>
</head>
<body>
    <section>
        <h1 class="typed" data-animation="type-loop"
            data-typing-strings="Small|Fast|Reliable" data-delay="500"
            data-speed="80" data-pause="1500"></h1>
    </section>
    <section><p data-animation="fade-up" data-duration="800">Revealed on scroll.</p></section>
    <section><p data-animation="zoom-in" data-trigger="hover" data-once="true">Hover me.</p></section>
</body>
</html>`

const debounceDelay = 500 * time.Millisecond

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Build the wasm program in dir and serve it with live rebuilds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runServe(cmd.Context(), a.cfg, a.log, dir)
		},
	}
	cmd.Flags().IntP("port", "p", defaultPort, "port to serve on")
	cmd.Flags().Bool("open", false, "open the page in a browser")
	return cmd
}

// runServe builds the program in dir, then serves it and rebuilds on every
// source change until ctx is cancelled.
func runServe(ctx context.Context, cfg cliConfig, log *slog.Logger, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid app directory: %s", dir)
	}
	if err := checkMainPackage(dir); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := newServeMetrics(reg)
	if err != nil {
		return err
	}
	build := func(ctx context.Context) (string, error) {
		start := time.Now()
		out, err := buildWASM(ctx, dir, log)
		metrics.recordBuild(time.Since(start), err)
		return out, err
	}

	log.Info("building wasm bundle", "dir", dir)
	buildDir, err := build(ctx)
	if err != nil {
		return fmt.Errorf("building wasm: %w", err)
	}
	b := &bundle{}
	b.swap(buildDir)
	defer b.swap("")

	hub := newReloadHub(log)
	hub.onChange = metrics.setClients
	defer hub.closeAll()

	port, listener, err := findFreePort(cfg.Port, log)
	if err != nil {
		return fmt.Errorf("finding free port: %w", err)
	}
	server := &http.Server{Handler: newMux(b, hub, reg)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return watchFiles(ctx, dir, log, func() error {
			log.Info("rebuilding")
			newDir, err := build(ctx)
			if err != nil {
				return fmt.Errorf("rebuilding wasm: %w", err)
			}
			b.swap(newDir)
			sent := hub.broadcast(reloadMessage)
			metrics.addReloads(sent)
			log.Info("rebuild complete", "reloaded", sent)
			return nil
		})
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	log.Info("serving", "url", url, "watching", dir)
	if cfg.Open {
		if err := openBrowser(url); err != nil {
			log.Warn("failed to open browser", "err", err)
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newMux(b *bundle, hub *reloadHub, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/livereload", hub)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/bundle.wasm", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, b.path("bundle.wasm"))
	})
	mux.HandleFunc("/wasm_exec.js", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, b.path("wasm_exec.js"))
	})
	mux.HandleFunc("/", indexHandler)
	return mux
}

// indexHandler serves indexHTML at the root path only.
func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// findFreePort listens on preferredPort, or on a port chosen by the OS when
// that one is taken.
func findFreePort(preferredPort int, log *slog.Logger) (int, net.Listener, error) {
	if preferredPort > 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", preferredPort))
		if err == nil {
			return preferredPort, ln, nil
		}
		log.Warn("port in use, finding alternative", "port", preferredPort)
	}
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, nil, err
	}
	return ln.Addr().(*net.TCPAddr).Port, ln, nil
}

// watchRoots returns appDir plus every module directory of its build that
// lives outside the module cache.
func watchRoots(appDir string, log *slog.Logger) map[string]struct{} {
	roots := map[string]struct{}{appDir: {}}

	gomodcache, err := exec.Command("go", "env", "GOMODCACHE").Output()
	if err != nil {
		log.Warn("reading GOMODCACHE", "err", err)
	}
	cache := strings.TrimSpace(string(gomodcache))

	list := exec.Command("go", "list", "-C", appDir, "-m", "-mod=readonly", "-f", "{{.Dir}}", "all")
	list.Env = buildEnv(appDir)
	out, err := list.Output()
	if err != nil {
		log.Warn("listing modules", "err", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" || (cache != "" && strings.HasPrefix(line, cache)) {
			continue
		}
		roots[line] = struct{}{}
	}
	return roots
}

// isSourceChange reports whether a file event should trigger a rebuild.
func isSourceChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".go", ".mod", ".sum":
		return true
	}
	return false
}

// watchFiles calls onRebuild once source changes under appDir have settled,
// until ctx is cancelled.
func watchFiles(ctx context.Context, appDir string, log *slog.Logger, onRebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error setting up file watcher: %w", err)
	}
	defer watcher.Close()

	for root := range watchRoots(appDir, log) {
		err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if info.IsDir() {
				if err := watcher.Add(path); err != nil {
					log.Warn("watching directory", "path", path, "err", err)
				}
			}
			return nil
		})
		if err != nil {
			log.Warn("walking directory", "root", root, "err", err)
		}
	}

	rebuildTimer := time.NewTimer(debounceDelay)
	rebuildTimer.Stop()
	defer rebuildTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isSourceChange(event) {
				log.Debug("file changed, scheduling rebuild", "file", event.Name)
				rebuildTimer.Reset(debounceDelay)
			}
		case <-rebuildTimer.C:
			if err := onRebuild(); err != nil {
				log.Error("rebuild failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
		}
	}
}

// browserOpeners are tried in order until one is found on PATH.
var browserOpeners = [][]string{
	{"open"},
	{"xdg-open"},
	{"rundll32", "url.dll,FileProtocolHandler"},
}

func openBrowser(url string) error {
	for _, opener := range browserOpeners {
		bin, err := exec.LookPath(opener[0])
		if err != nil {
			continue
		}
		args := append(append([]string(nil), opener[1:]...), url)
		return exec.Command(bin, args...).Start()
	}
	return fmt.Errorf("no browser opener found on PATH")
}
