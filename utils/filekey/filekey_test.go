package filekey_test

import (
	"strings"
	"testing"
	"time"

	"atlas-cms/utils/filekey"
)

func TestNewAt_SameMillisecondProducesDistinctKeys(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		key := filekey.NewAt(now, "01hx3qz8", "photo.jpg", "")
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key generated for same timestamp: %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestNew_Shape(t *testing.T) {
	key := filekey.New("01hx3qz8", "My Photo.JPG", "")
	if !strings.HasPrefix(key, "project-01hx3qz8/") {
		t.Errorf("key %q missing project prefix", key)
	}
	if !strings.HasSuffix(key, "_My_Photo.jpg") {
		t.Errorf("key %q should end with sanitized name and lowercased extension", key)
	}
}

func TestNew_ExtensionOverride(t *testing.T) {
	key := filekey.New("p1", "drawing.png", ".jpg")
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q should use the explicit extension", key)
	}
}

func TestID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := filekey.ID()
		if len(id) != 26 {
			t.Fatalf("ID length = %d, want 26: %q", len(id), id)
		}
		if id != strings.ToLower(id) {
			t.Fatalf("ID %q is not lowercase", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "replaces extension with jpg",
			key:  "project-p1/abc_photo.png",
			want: "project-p1/thumb_abc_photo.jpg",
		},
		{
			name: "no extension",
			key:  "project-p1/abc_photo",
			want: "project-p1/thumb_abc_photo.jpg",
		},
		{
			name: "no directory",
			key:  "abc_photo.jpg",
			want: "thumb_abc_photo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filekey.Thumbnail(tt.key); got != tt.want {
				t.Errorf("Thumbnail(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "photo.jpg", "photo"},
		{"spaces and symbols", "my photo (1).png", "my_photo__1_"},
		{"path traversal stripped", "../../etc/passwd", "passwd"},
		{"hyphen preserved", "band-cover.webp", "band-cover"},
		{"empty becomes file", ".jpg", "file"},
		{"long name truncated", strings.Repeat("a", 60) + ".png", strings.Repeat("a", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filekey.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
