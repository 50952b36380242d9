// Package modules loads library directories of documents whose named
// statements, typically operations, become visible to other documents.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/pipeline"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/symbols"
)

type Loader struct {
	LoadedModules map[string]*Module // Cache of loaded modules by path

	engine *propagation.Engine
}

func NewLoader(engine *propagation.Engine) *Loader {
	return &Loader{
		LoadedModules: make(map[string]*Module),
		engine:        engine,
	}
}

// isDocumentFile checks if a file has a recognized document extension
func isDocumentFile(name string) bool {
	for _, ext := range config.DocumentFileExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Load loads the library directory at path, using the cache when possible.
func (l *Loader) Load(path string) (*Module, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if mod, ok := l.LoadedModules[absPath]; ok {
		return mod, nil
	}

	mod, err := l.loadDir(absPath)
	if err != nil {
		return nil, err
	}
	l.LoadedModules[absPath] = mod
	return mod, nil
}

func (l *Loader) loadDir(absPath string) (*Module, error) {
	files, err := os.ReadDir(absPath)
	if err != nil {
		return nil, err
	}

	var docFiles []string
	for _, f := range files {
		if !f.IsDir() && isDocumentFile(f.Name()) {
			docFiles = append(docFiles, filepath.Join(absPath, f.Name()))
		}
	}
	// Sort for deterministic processing order
	sort.Strings(docFiles)

	if len(docFiles) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", strings.Join(config.DocumentFileExtensions, "/"), absPath)
	}

	module := &Module{
		Name:    filepath.Base(absPath),
		Dir:     absPath,
		Exports: make(map[string]*ast.Statement),
	}

	scope := symbols.NewContext()
	load := pipeline.Load(&pipeline.ReconcileProcessor{Engine: l.engine})
	for _, file := range docFiles {
		ctx := pipeline.NewContext(file)
		ctx.Scope = scope
		ctx = load.Run(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		module.Documents = append(module.Documents, ctx.Document)
		for _, s := range ctx.Result {
			scope = scope.BindStatement(s)
			if isExported(s.Name) {
				if prev, dup := module.Exports[s.Name]; dup && prev != s {
					return nil, fmt.Errorf("%s: %q is already exported by an earlier document", file, s.Name)
				}
				module.Exports[s.Name] = s
			}
		}
	}
	return module, nil
}

// Scope loads every directory in paths and binds their exports, in order,
// on top of an empty scope.
func (l *Loader) Scope(paths ...string) (*symbols.Context, error) {
	scope := symbols.NewContext()
	for _, p := range paths {
		mod, err := l.Load(p)
		if err != nil {
			return nil, fmt.Errorf("loading library %s: %w", p, err)
		}
		scope = mod.Bind(scope)
	}
	return scope, nil
}
