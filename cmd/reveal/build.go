package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// buildEnv returns the environment for go commands run against appDir.
func buildEnv(appDir string, extra ...string) []string {
	env := append(os.Environ(), extra...)
	if outsideWorkspace(appDir) {
		env = append(env, "GOWORK=off")
	}
	return env
}

// checkMainPackage reports an error unless dir holds a main package.
func checkMainPackage(dir string) error {
	cfg := &packages.Config{
		Mode: packages.NeedName,
		Dir:  dir,
		Env:  buildEnv(dir),
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return fmt.Errorf("loading %s: %w", dir, err)
	}
	if len(pkgs) == 0 || pkgs[0].Name != "main" {
		return fmt.Errorf("%s is not package main", dir)
	}
	return nil
}

// buildWASM compiles the Go program in appDir to WebAssembly in a fresh
// temporary directory, next to a copy of the toolchain's wasm_exec.js.
func buildWASM(ctx context.Context, appDir string, log *slog.Logger) (string, error) {
	buildDir, err := os.MkdirTemp("", "reveal-build-*")
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(appDir)
	if err != nil {
		return "", fmt.Errorf("failed to set app dir: %w", err)
	}

	outWasm := filepath.Join(buildDir, "bundle.wasm")
	cmd := exec.CommandContext(ctx, "go", "build", "-o", outWasm)
	cmd.Env = buildEnv(appDir, "GOOS=js", "GOARCH=wasm")
	cmd.Dir = absPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug("building wasm", "dir", absPath, "out", outWasm)
	if err := cmd.Run(); err != nil {
		os.RemoveAll(buildDir)
		return "", err
	}

	wasmExecSrc := filepath.Join(runtime.GOROOT(), "lib", "wasm", "wasm_exec.js")
	if _, err := os.Stat(wasmExecSrc); err != nil {
		// toolchains before go1.24 ship it under misc/
		wasmExecSrc = filepath.Join(runtime.GOROOT(), "misc", "wasm", "wasm_exec.js")
	}
	wasmExec, err := os.ReadFile(wasmExecSrc)
	if err == nil {
		err = os.WriteFile(filepath.Join(buildDir, "wasm_exec.js"), wasmExec, 0644)
	}
	if err != nil {
		os.RemoveAll(buildDir)
		return "", err
	}
	return buildDir, nil
}

// bundle is the build directory currently served.
type bundle struct {
	mu  sync.RWMutex
	dir string
}

func (b *bundle) path(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return filepath.Join(b.dir, name)
}

// swap installs dir and removes the previous build.
func (b *bundle) swap(dir string) {
	b.mu.Lock()
	old := b.dir
	b.dir = dir
	b.mu.Unlock()
	if old != "" {
		os.RemoveAll(old)
	}
}

// workspaceModules finds the go.work file governing dir and returns it with
// the absolute directories of the modules it uses. work is empty outside a
// workspace.
func workspaceModules(dir string) (work string, modules []string, err error) {
	d, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		work = filepath.Join(d, "go.work")
		data, err := os.ReadFile(work)
		switch {
		case err == nil:
			wf, err := modfile.ParseWork(work, data, nil)
			if err != nil {
				return work, nil, err
			}
			for _, use := range wf.Use {
				path := use.Path
				if !filepath.IsAbs(path) {
					path = filepath.Join(d, path)
				}
				modules = append(modules, filepath.Clean(path))
			}
			return work, modules, nil
		case !os.IsNotExist(err):
			return "", nil, err
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", nil, nil
		}
		d = parent
	}
}

// outsideWorkspace reports whether dir sits under a go.work that does not
// list it, in which case go commands must run with GOWORK=off.
func outsideWorkspace(dir string) bool {
	work, modules, err := workspaceModules(dir)
	if err != nil || work == "" {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, m := range modules {
		if m == abs {
			return false
		}
	}
	return true
}
