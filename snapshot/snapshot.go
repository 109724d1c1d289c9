// Package snapshot reads and writes event snapshots over a blobstore.
//
// A snapshot is one event's population and relations, frozen at the
// point the reconstruction producer emitted them. The file format is
// self-describing: a small header records the format version, the codec
// name and whether the body is zstd-compressed, so readers never need
// out-of-band knowledge to open a snapshot.
//
// Layout:
//
//	[0:4]  magic "rcev"
//	[4]    format version (currently 1)
//	[5]    flags (bit 0: zstd-compressed body)
//	[6]    codec name length n
//	[7:7+n] codec name
//	[7+n:] body (codec-encoded event.Event)
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/larbeam/recocheck/blobstore"
	"github.com/larbeam/recocheck/codec"
	"github.com/larbeam/recocheck/event"
)

var (
	// ErrBadMagic is returned when a blob does not start with the
	// snapshot magic bytes.
	ErrBadMagic = errors.New("not an event snapshot")

	// ErrUnknownCodec is returned when a snapshot was written with a
	// codec this build does not know.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrUnsupportedVersion is returned when a snapshot uses a newer
	// format version than this build supports.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

var magic = [4]byte{'r', 'c', 'e', 'v'}

const (
	formatVersion  = byte(1)
	flagCompressed = byte(1 << 0)
)

// Options configure snapshot writing.
type Options struct {
	// Codec encodes the event body. Defaults to codec.Default.
	Codec codec.Codec

	// Compress enables zstd compression of the body.
	Compress bool
}

// Write encodes the event and stores it under name.
func Write(ctx context.Context, store blobstore.BlobStore, name string, ev *event.Event, optFns ...func(*Options)) error {
	opts := Options{
		Codec: codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	body, err := opts.Codec.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	flags := byte(0)
	if opts.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		body = enc.EncodeAll(body, nil)
		_ = enc.Close()
		flags |= flagCompressed
	}

	codecName := opts.Codec.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("codec name too long: %q", codecName)
	}

	buf := make([]byte, 0, 7+len(codecName)+len(body))
	buf = append(buf, magic[:]...)
	buf = append(buf, formatVersion, flags, byte(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, body...)

	return store.Put(ctx, name, buf)
}

// Read loads and decodes the snapshot stored under name.
func Read(ctx context.Context, store blobstore.BlobStore, name string) (*event.Event, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	raw, err := io.ReadAll(blob)
	if err != nil {
		return nil, err
	}

	if len(raw) < 7 || [4]byte(raw[:4]) != magic {
		return nil, ErrBadMagic
	}
	if raw[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, raw[4])
	}

	flags := raw[5]
	nameLen := int(raw[6])
	if len(raw) < 7+nameLen {
		return nil, ErrBadMagic
	}

	c, ok := codec.ByName(string(raw[7 : 7+nameLen]))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(raw[7:7+nameLen]))
	}

	body := raw[7+nameLen:]
	if flags&flagCompressed != 0 {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		body, err = dec.DecodeAll(body, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
	}

	var ev event.Event
	if err := c.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}
