// Package thumbnails generates scaled-down copies of archive images. Every
// directory under the resources tree gets a thumbnails/ subdirectory holding
// one thumbnail per source image, under the same filename.
package thumbnails

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// SubdirName is the per-directory output directory for generated thumbnails.
const SubdirName = "thumbnails"

// Options controls thumbnail generation.
type Options struct {
	// MaxSize is the bounding box in pixels; images are scaled to fit while
	// keeping aspect ratio.
	MaxSize int
	// Quality is the JPEG encoding quality (1-100).
	Quality int
	// Workers caps the number of concurrent image conversions.
	Workers int
}

type job struct {
	source string
	target string
}

// Generate walks root, creates a thumbnails subdirectory next to every image,
// and writes missing thumbnails. Existing thumbnails are left untouched, so a
// second run over an unchanged tree does nothing. Per-image failures are
// logged and skipped; only filesystem walk errors abort the run. Returns the
// number of thumbnails created.
func Generate(ctx context.Context, root string, opts Options, logger *slog.Logger) (int, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	var jobs []job
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == SubdirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !isImage(entry.Name()) {
			return nil
		}

		target := filepath.Join(filepath.Dir(path), SubdirName, entry.Name())
		if _, statErr := os.Stat(target); statErr == nil {
			return nil
		}
		jobs = append(jobs, job{source: path, target: target})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", root, err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	// Directory creation happens up front so the workers only touch files.
	dirs := make(map[string]struct{})
	for _, j := range jobs {
		dirs[filepath.Dir(j.target)] = struct{}{}
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create thumbnail directory %s: %w", dir, err)
		}
	}

	var created atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)
	for _, j := range jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if err := convert(j.source, j.target, opts); err != nil {
				logger.Warn("thumbnail generation failed",
					"component", "thumbnails",
					"source", j.source,
					"error", err)
				return nil
			}
			created.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return int(created.Load()), err
	}
	return int(created.Load()), nil
}

func convert(source, target string, opts Options) error {
	img, err := imaging.Open(source)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	thumb := imaging.Fit(img, opts.MaxSize, opts.MaxSize, imaging.Lanczos)
	if err := imaging.Save(thumb, target, imaging.JPEGQuality(opts.Quality)); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	return nil
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
