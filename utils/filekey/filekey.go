// Package filekey generates unique blob storage keys for uploaded files.
package filekey

import (
	"fmt"
	"math/rand"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.MonotonicEntropy
	entropyMu   sync.Mutex
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// ID returns a bare lowercase ULID, used as the primary key for rows
// created by the upload pipeline.
func ID() string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	entropyMu.Unlock()
	return strings.ToLower(id.String())
}

// New returns a storage key of the form
// project-<id>/<ulid>_<sanitized-name><ext>. Keys are unique even for
// identical names uploaded within the same millisecond: the ULID's
// monotonic entropy disambiguates equal timestamps.
func New(projectID string, originalName, ext string) string {
	return NewAt(time.Now(), projectID, originalName, ext)
}

// NewAt is New with an explicit timestamp.
func NewAt(t time.Time, projectID string, originalName, ext string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), newEntropy())
	entropyMu.Unlock()

	if ext == "" {
		ext = path.Ext(originalName)
	}
	return fmt.Sprintf("project-%s/%s_%s%s",
		projectID, strings.ToLower(id.String()), Sanitize(originalName), strings.ToLower(ext))
}

// Thumbnail derives the thumbnail key paired with a main storage key.
// Thumbnails are always JPEG renditions.
func Thumbnail(key string) string {
	dir, base := path.Split(key)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return dir + "thumb_" + base + ".jpg"
}

// Sanitize strips the extension and reduces the name to a storage-safe slug.
func Sanitize(name string) string {
	name = path.Base(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
