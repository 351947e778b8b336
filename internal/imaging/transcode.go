package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"atlas-cms/internal/upload"
	"atlas-cms/internal/utils/platformerrors"
)

// Options control raster output. Zero values fall back to the defaults
// below.
type Options struct {
	MaxDimension     int
	Quality          int
	ThumbnailWidth   int
	ThumbnailQuality int
}

const (
	defaultMaxDimension     = 1200
	defaultQuality          = 80
	defaultThumbnailWidth   = 100
	defaultThumbnailQuality = 70
)

// Result is the transcoded payload ready for storage.
type Result struct {
	Data      []byte
	MimeType  string
	Thumbnail []byte // nil when the input produces no thumbnail
}

// Transcoder normalizes raster images to bounded JPEG and derives a
// thumbnail. Non-image payloads and SVG pass through untouched.
type Transcoder struct {
	opts Options
	log  zerolog.Logger
}

func NewTranscoder(opts Options, log zerolog.Logger) *Transcoder {
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = defaultQuality
	}
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = defaultThumbnailWidth
	}
	if opts.ThumbnailQuality <= 0 || opts.ThumbnailQuality > 100 {
		opts.ThumbnailQuality = defaultThumbnailQuality
	}
	return &Transcoder{opts: opts, log: log}
}

// Transcode processes one payload according to its declared type and MIME.
// Only raster images are re-encoded; everything else is returned as-is so
// the pipeline stays uniform for audio, video and model files.
func (t *Transcoder) Transcode(ctx context.Context, declaredType, mimeType string, data []byte) (*Result, error) {
	if declaredType != upload.TypeImage || mimeType == upload.MimeSVG {
		return &Result{Data: data, MimeType: mimeType}, nil
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := t.transcodeRaster(ctx, mimeType, data)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeProcessingTimeout, "image transcoding timed out", ctx.Err(),
			"7fd21c64-3b8a-49e5-b0d7-16f4a2c98e35")
	}
}

func (t *Transcoder) transcodeRaster(ctx context.Context, mimeType string, data []byte) (*Result, error) {
	src, err := decode(mimeType, data)
	if err != nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeProcessingFailed, "failed to decode image", err,
			"a85f30d2-47c9-4e16-9b3a-50e7d128cf64",
			map[string]any{"mime_type": mimeType})
	}

	main := resizeToFit(src, t.opts.MaxDimension)
	encoded, err := encodeJPEG(main, t.opts.Quality)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeProcessingFailed, "failed to encode image", err,
			"c4917be0-52d6-4af3-8e01-9b3c65da07f2")
	}

	res := &Result{Data: encoded, MimeType: "image/jpeg"}

	// Thumbnail generation is best effort: the upload proceeds without one.
	thumb, err := t.thumbnail(src)
	if err != nil {
		t.log.Warn().Err(err).Msg("thumbnail generation failed, continuing without thumbnail")
	} else {
		res.Thumbnail = thumb
	}
	return res, nil
}

// thumbnail scales to a fixed width preserving aspect ratio, always from the
// original decode so its quality is independent of the main output.
func (t *Transcoder) thumbnail(src image.Image) ([]byte, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("empty image bounds")
	}
	w := t.opts.ThumbnailWidth
	h := b.Dy() * w / b.Dx()
	if h < 1 {
		h = 1
	}
	return encodeJPEG(scale(src, w, h), t.opts.ThumbnailQuality)
}

func decode(mimeType string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}

// resizeToFit bounds the longest edge at max, never upscaling.
func resizeToFit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return scale(src, w, h)
}

func scale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
