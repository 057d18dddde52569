package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/fsutil"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every given path and returns the merged model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Loaders dispatches each file to the Loader registered for its extension.
// Directories are expanded to all files with a known extension, in lexical
// order, so a conf.d style directory overrides predictably.
type Loaders map[string]Loader

// Extensions returns the registered extensions in sorted order.
func (ls Loaders) Extensions() []string {
	exts := make([]string, 0, len(ls))
	for ext := range ls {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load implements Loader.
func (ls Loaders) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ls.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered configuration files.", "count", len(files))

	merged := &Model{}
	for _, file := range files {
		loader, ok := ls[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, fmt.Errorf("no loader for config file %s", file)
		}
		m, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		merged.Merge(m)
	}
	return merged, nil
}
