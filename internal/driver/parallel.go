package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"sift/internal/trace"
)

// Extensions lists the file suffixes collected from directories.
var Extensions = []string{".js", ".mjs", ".cjs"}

// ListFiles expands paths into lintable files. Directories are walked
// recursively, skipping hidden directories and node_modules, and their
// files are sorted for a deterministic order. Explicit files are kept
// whatever their suffix. Duplicates are dropped.
func ListFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(Extensions, filepath.Ext(path)) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		for _, p := range found {
			add(p)
		}
	}
	return files, nil
}

// LintFiles lints files with at most jobs in flight (GOMAXPROCS when jobs
// is not positive). Results follow the order of files. The cache, if any,
// is persisted once after every file succeeded.
func (l *Linter) LintFiles(ctx context.Context, files []string, jobs int) ([]*Result, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeRun, "lint files")
	defer span.End("")

	results := make([]*Result, len(files))
	if len(files) == 0 {
		return results, l.persist(ctx)
	}
	for _, path := range files {
		emit(l.Progress, Event{File: path, Stage: StageLint, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// index i is unique per goroutine, no lock needed
			res, err := l.lintEvented(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, l.persist(ctx)
}

func (l *Linter) persist(ctx context.Context) error {
	if l.Cache == nil {
		return nil
	}
	span, _ := trace.StartSpan(ctx, trace.ScopeRun, "persist cache")
	err := l.Cache.Persist()
	if err != nil {
		span.End("error")
		return err
	}
	span.End("")
	return nil
}
