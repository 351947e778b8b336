// Package upload decodes and validates multipart file submissions before
// any transcoding or storage work begins.
package upload

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"atlas-cms/internal/utils/platformerrors"
)

// maxFieldBytes bounds plain form fields (the metadata JSON blob is the
// largest expected field by far).
const maxFieldBytes = 1 << 20

// Options controls multipart decoding.
type Options struct {
	// MaxFileBytes is the per-file ceiling; a file over the ceiling is
	// rejected individually without failing the whole request. 0 = no limit.
	MaxFileBytes int64
	// MaxFiles caps the number of file parts accepted. 0 = no limit.
	MaxFiles int
}

// RawFilePart is one decoded file from a multipart body.
type RawFilePart struct {
	FieldName    string
	OriginalName string
	MimeType     string
	Size         int64
	Source       Source
}

// RejectedPart records a file that could not be decoded, by name, so batch
// responses can report it without aborting the other files.
type RejectedPart struct {
	Name string
	Err  error
}

// Form is the decoded multipart submission.
type Form struct {
	Fields   map[string]string
	Files    []RawFilePart
	Rejected []RejectedPart
}

// ParseForm decodes the entire request body into memory. Suitable for
// single-file requests; batch endpoints use EachPart to bound memory.
// The body is consumed exactly once.
func ParseForm(r *http.Request, opts Options) (*Form, error) {
	ctx := r.Context()
	mr, err := multipartReader(r)
	if err != nil {
		return nil, err
	}

	form := &Form{Fields: make(map[string]string)}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
				platformerrors.ErrorTypeMalformedMultipart, "decode multipart part", err,
				"e4a7c6b0-91d3-4f58-8a2e-b60f13d97c45")
		}

		if part.FileName() == "" {
			value, err := readField(part)
			if err != nil {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
					platformerrors.ErrorTypeMalformedMultipart, "decode form field", err,
					"1d8f5e92-7c3a-4b06-9f14-a25d60c87b3e")
			}
			form.Fields[part.FormName()] = value
			continue
		}

		name := part.FileName()
		if opts.MaxFiles > 0 && len(form.Files) >= opts.MaxFiles {
			drain(part)
			form.Rejected = append(form.Rejected, RejectedPart{
				Name: name,
				Err: platformerrors.NewError(ctx, platformerrors.LayerHandler,
					platformerrors.ErrorTypePayloadTooLarge, "too many files in request", nil,
					"b36a90d1-58fe-4c27-8d03-4e91c5a7f2b8"),
			})
			continue
		}

		data, err := Consume(ctx, &Streamed{Reader: part}, opts.MaxFileBytes)
		if err != nil {
			drain(part)
			form.Rejected = append(form.Rejected, RejectedPart{Name: name, Err: err})
			continue
		}

		form.Files = append(form.Files, RawFilePart{
			FieldName:    part.FormName(),
			OriginalName: name,
			MimeType:     partMimeType(part),
			Size:         int64(len(data)),
			Source:       &Buffered{Data: data},
		})
	}

	return form, nil
}

// EachPart incrementally decodes the body, invoking fn for each file part
// while plain fields accumulate on the returned form. The part's Source
// streams directly from the wire and must be consumed before fn returns.
// A failing fn (including a per-file size-ceiling abort inside Consume)
// rejects that file only; decoding continues with the next part.
func EachPart(r *http.Request, opts Options, fn func(part RawFilePart) error) (*Form, error) {
	ctx := r.Context()
	mr, err := multipartReader(r)
	if err != nil {
		return nil, err
	}

	form := &Form{Fields: make(map[string]string)}
	seen := 0
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
				platformerrors.ErrorTypeMalformedMultipart, "decode multipart part", err,
				"07c52f8a-d4e1-4b39-96a7-83f0b2c61d5e")
		}

		if part.FileName() == "" {
			value, err := readField(part)
			if err != nil {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
					platformerrors.ErrorTypeMalformedMultipart, "decode form field", err,
					"6e2b84d7-09fa-4c51-b38e-57a1d20c94f6")
			}
			form.Fields[part.FormName()] = value
			continue
		}

		name := part.FileName()
		seen++
		if opts.MaxFiles > 0 && seen > opts.MaxFiles {
			drain(part)
			form.Rejected = append(form.Rejected, RejectedPart{
				Name: name,
				Err: platformerrors.NewError(ctx, platformerrors.LayerHandler,
					platformerrors.ErrorTypePayloadTooLarge, "too many files in request", nil,
					"f90d31b6-2ca8-4e75-a1d4-08b6c53e97a2"),
			})
			continue
		}

		raw := RawFilePart{
			FieldName:    part.FormName(),
			OriginalName: name,
			MimeType:     partMimeType(part),
			Source:       &Streamed{Reader: io.LimitReader(part, limitOrMax(opts.MaxFileBytes))},
		}
		if err := fn(raw); err != nil {
			form.Rejected = append(form.Rejected, RejectedPart{Name: name, Err: err})
		}
		drain(part)
	}

	return form, nil
}

func limitOrMax(limit int64) int64 {
	if limit <= 0 {
		return 1 << 62
	}
	return limit + 1
}

func multipartReader(r *http.Request) (*multipart.Reader, error) {
	ctx := r.Context()
	contentType := r.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeMalformedMultipart, "request is not multipart/form-data", err,
			"a5d18c40-37eb-4f62-90b1-c84e56d2a7f9")
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeMalformedMultipart, "multipart boundary missing", nil,
			"48b0e7d3-c162-4a95-8f30-5d7a92c41e6b")
	}
	return multipart.NewReader(r.Body, boundary), nil
}

func readField(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func drain(part *multipart.Part) {
	_, _ = io.Copy(io.Discard, part)
	_ = part.Close()
}

func partMimeType(part *multipart.Part) string {
	contentType := part.Header.Get("Content-Type")
	if contentType == "" {
		return "application/octet-stream"
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	return contentType
}
