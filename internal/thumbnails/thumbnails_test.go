package thumbnails_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"knarchief/internal/testsupport"
	"knarchief/internal/thumbnails"
)

var testOptions = thumbnails.Options{MaxSize: 50, Quality: 90, Workers: 2}

func TestGenerateCreatesThumbnails(t *testing.T) {
	root := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(root, "hamlet", "poster1.png"), 200, 100)
	testsupport.WritePNG(t, filepath.Join(root, "hamlet", "scene1.png"), 100, 200)
	testsupport.WritePNG(t, filepath.Join(root, "faust", "kaartje.png"), 80, 80)

	created, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 thumbnails, got %d", created)
	}

	thumb, err := imaging.Open(filepath.Join(root, "hamlet", "thumbnails", "poster1.png"))
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 25 {
		t.Fatalf("expected 50x25 thumbnail, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(root, "hamlet", "poster1.png"), 200, 100)

	if _, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t)); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	created, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t))
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run should create nothing, got %d", created)
	}
}

func TestGenerateSkipsThumbnailDirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(root, "hamlet", "poster1.png"), 200, 100)

	if _, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t)); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	// A second pass must not descend into the generated directory and make
	// thumbnails of thumbnails.
	if _, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t)); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	nested := filepath.Join(root, "hamlet", "thumbnails", "thumbnails")
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Fatalf("nested thumbnail directory should not exist: %v", err)
	}
}

func TestGenerateSkipsUnreadableImages(t *testing.T) {
	root := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(root, "hamlet", "good.png"), 120, 120)
	broken := filepath.Join(root, "hamlet", "broken.jpg")
	if err := os.WriteFile(broken, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write broken image: %v", err)
	}

	created, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 thumbnail despite broken image, got %d", created)
	}
}

func TestGenerateIgnoresNonImages(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "hamlet"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "hamlet", "boekje.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	created, err := thumbnails.Generate(context.Background(), root, testOptions, testsupport.SilentLogger(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no thumbnails, got %d", created)
	}
	if _, err := os.Stat(filepath.Join(root, "hamlet", "thumbnails")); !os.IsNotExist(err) {
		t.Fatal("thumbnails directory should not be created for non-images")
	}
}
