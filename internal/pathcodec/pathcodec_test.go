package pathcodec_test

import (
	"errors"
	"testing"

	"knarchief/internal/pathcodec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		folder string
		file   string
		want   string
	}{
		{"plain", "hamlet", "poster1.jpg", "hamlet/poster1.jpg"},
		{"nested folder", "resources/hamlet/thumbnails", "foto 01.png", "resources/hamlet/thumbnails/foto 01.png"},
		{"empty folder", "", "programma.pdf", "programma.pdf"},
		{"unicode", "café", "scène.jpg", "café/scène.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := pathcodec.Encode(tc.folder, tc.file)
			got, err := pathcodec.Decode(token)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("round trip: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	for _, token := range []string{"abc", "zz", "68656c6c6fg", "=="} {
		_, err := pathcodec.Decode(token)
		if err == nil {
			t.Fatalf("expected error for token %q", token)
		}
		var decodeErr *pathcodec.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError for %q, got %T", token, err)
		}
		if decodeErr.Token != token {
			t.Fatalf("error should carry the token, got %q", decodeErr.Token)
		}
	}
}

func TestSplit(t *testing.T) {
	token := pathcodec.Encode("resources/hamlet", "poster1.jpg")
	dir, file, err := pathcodec.Split(token)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if dir != "resources/hamlet" || file != "poster1.jpg" {
		t.Fatalf("unexpected split: %q, %q", dir, file)
	}
}

func TestSplitPropagatesDecodeError(t *testing.T) {
	if _, _, err := pathcodec.Split("not-hex"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
