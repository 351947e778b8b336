package upload

import (
	"context"
	"io"

	"atlas-cms/internal/utils/platformerrors"
)

// Source is the payload of a decoded file part: either fully buffered bytes
// or a stream still attached to the request body. Ownership of the payload
// transfers on Consume; a source can be consumed at most once.
type Source interface {
	isSource()
}

// Buffered holds a fully decoded file payload.
type Buffered struct {
	Data     []byte
	consumed bool
}

func (*Buffered) isSource() {}

// Streamed holds an unread file payload. The reader is only valid until the
// next part of the request body is decoded.
type Streamed struct {
	Reader   io.Reader
	consumed bool
}

func (*Streamed) isSource() {}

// Consume drains a source into memory, enforcing the per-file byte ceiling
// when limit > 0. The buffer or stream is released; reading a source twice
// is a programming error and fails.
func Consume(ctx context.Context, src Source, limit int64) ([]byte, error) {
	switch v := src.(type) {
	case *Buffered:
		if v.consumed {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeInternal, "file source already consumed", nil,
				"5f0c2a19-8e4d-4f6b-9c31-7a2e84d0b1f6")
		}
		v.consumed = true
		data := v.Data
		v.Data = nil
		if limit > 0 && int64(len(data)) > limit {
			return nil, partTooLarge(ctx, int64(len(data)), limit)
		}
		return data, nil
	case *Streamed:
		if v.consumed {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeInternal, "file source already consumed", nil,
				"3b9d71c4-2a50-4e8f-8d67-1f5c09aa34e2")
		}
		v.consumed = true
		reader := v.Reader
		v.Reader = nil
		if limit <= 0 {
			return io.ReadAll(reader)
		}
		data, err := io.ReadAll(io.LimitReader(reader, limit+1))
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeMalformedMultipart, "read file stream", err,
				"c81f4d03-6b2e-47a9-9e50-d47a1c38b5e9")
		}
		if int64(len(data)) > limit {
			// Abort this file only; the caller drains the rest of the part.
			return nil, partTooLarge(ctx, int64(len(data)), limit)
		}
		return data, nil
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "unknown file source variant", nil,
			"9ad04e67-13fb-4c28-b1a5-680de92c7410")
	}
}

func partTooLarge(ctx context.Context, size, limit int64) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypePayloadTooLarge, "file exceeds the per-file size limit", nil,
		"72e5b1a8-4c0f-4d93-a6b7-52c418f90de3",
		map[string]any{"size": size, "limit": limit})
}
