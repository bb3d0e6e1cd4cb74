// Package pack builds package files from source directories.
//
// A source directory must contain a metadata.yaml declaring its content
// type; every other file becomes a blob. For app bundles the directory's
// relative paths shape the manifest, for comics the numeric page stems do.
package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/media"
)

// Option configures Create.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	concurrency int
}

// WithLogger sets the logger used to report packaging progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHashConcurrency sets the number of files hashed in parallel.
// Values < 1 use one worker per CPU.
func WithHashConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// Create packages the contents of root into a package file at output.
//
// The output path must lie outside root, or the package would be swallowed
// into itself on the next run. Source files are hashed concurrently and
// streamed into the package in content-hash order; directories and
// .DS_Store files are skipped, and metadata.yaml shapes the manifest
// instead of becoming a blob.
//
// The context cancels the directory walk and hashing.
func Create(ctx context.Context, root, output string, opts ...Option) error {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = runtime.GOMAXPROCS(0)
	}

	if insideRoot(root, output) {
		return &OutputInRootError{Output: output, Root: root}
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return &OutputIsDirError{Output: output}
	}

	metaPath := filepath.Join(root, MetadataFile)
	if _, err := os.Stat(metaPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MetadataMissingError{Root: root}
		}
		return err
	}
	meta, err := LoadMetadata(metaPath)
	if err != nil {
		return err
	}

	dir, err := os.OpenRoot(root)
	if err != nil {
		return err
	}
	defer dir.Close()

	paths, err := collectPaths(ctx, dir)
	if err != nil {
		return err
	}

	tmpl, err := meta.template(root, paths)
	if err != nil {
		return err
	}

	files, err := hashFiles(ctx, dir, paths, cfg.concurrency, cfg.logger)
	if err != nil {
		return err
	}

	if err := media.Save(files, tmpl.manifest(files), output, root); err != nil {
		return fmt.Errorf("pack: save package %s: %w", output, err)
	}

	cfg.logger.Info("package created",
		slog.String("output", output),
		slog.String("type", string(meta.Type)),
		slog.Int("files", len(files)))
	return nil
}

// insideRoot reports whether output falls lexically within root (root
// itself included). The check is purely path-based; neither path needs to
// exist.
func insideRoot(root, output string) bool {
	rel, err := filepath.Rel(root, output)
	if err != nil {
		return false
	}
	return rel == "." || rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// collectPaths walks the source tree, returning slash-separated relative
// paths in lexical order. Directories, .DS_Store files, and the metadata
// file are skipped.
func collectPaths(ctx context.Context, dir *os.Root) ([]string, error) {
	var paths []string
	err := fs.WalkDir(dir.FS(), ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Name() == ".DS_Store" || p == MetadataFile {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pack: walk %s: %w", dir.Name(), err)
	}
	return paths, nil
}

// hashFiles hashes collected files concurrently, recording each file's
// content hash and length for the writer.
func hashFiles(ctx context.Context, dir *os.Root, paths []string, concurrency int, logger *slog.Logger) (map[string]media.Entry, error) {
	files := make(map[string]media.Entry, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := hashFile(dir, p)
			if err != nil {
				return err
			}
			logger.Debug("hashed file",
				slog.String("path", p),
				slog.String("hash", entry.Hash.String()),
				slog.Uint64("length", entry.Length))
			mu.Lock()
			files[p] = entry
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// hashFile streams one file through the content hasher.
func hashFile(dir *os.Root, name string) (media.Entry, error) {
	f, err := dir.Open(filepath.FromSlash(name))
	if err != nil {
		return media.Entry{}, fmt.Errorf("pack: open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return media.Entry{}, fmt.Errorf("pack: stat %s: %w", name, err)
	}

	h := media.NewHasher()
	if _, err := io.Copy(h, f); err != nil {
		return media.Entry{}, fmt.Errorf("pack: hash %s: %w", name, err)
	}
	return media.Entry{
		Hash:   media.Hash(h.Sum(nil)),
		Length: uint64(info.Size()),
	}, nil
}
