// Package client adapts the record codec to a byte transport owned by the
// execution environment.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/danmuck/recordctl/internal/observability"
	"github.com/danmuck/recordctl/internal/record"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrNilTransport = errors.New("client: nil transport")

// Transport submits encoded instructions and returns raw account bytes. Both
// directions are opaque byte sequences.
type Transport interface {
	Submit(ctx context.Context, payload []byte) error
	Fetch(ctx context.Context, account record.Pubkey) ([]byte, error)
}

type Client struct {
	codec     *record.Codec
	transport Transport
	logger    zerolog.Logger
}

type Option func(*Client)

// WithCodec overrides the default opcode table.
func WithCodec(codec *record.Codec) Option {
	return func(c *Client) {
		if codec != nil {
			c.codec = codec
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(transport Transport, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}
	c := &Client{
		codec:     record.DefaultCodec(),
		transport: transport,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send encodes ins and hands the bytes to the transport.
func (c *Client) Send(ctx context.Context, ins record.Instruction) error {
	if ins == nil {
		observability.RecordSubmit(record.KindUnknown.String(), observability.ResultEncodeError)
		return fmt.Errorf("client: encode: %w", record.ErrUnknownKind)
	}
	kind := ins.Kind().String()
	payload, err := c.codec.Encode(ins)
	if err != nil {
		observability.RecordSubmit(kind, observability.ResultEncodeError)
		return fmt.Errorf("client: encode %s: %w", kind, err)
	}
	if err := c.transport.Submit(ctx, payload); err != nil {
		observability.RecordSubmit(kind, observability.ResultTransportError)
		c.logger.Warn().Str("kind", kind).Err(err).Msg("submit failed")
		return fmt.Errorf("client: submit %s: %w", kind, err)
	}
	observability.RecordSubmit(kind, observability.ResultOK)
	c.logger.Debug().Str("kind", kind).Int("bytes", len(payload)).Msg("instruction submitted")
	return nil
}

// Record fetches account and decodes its record header and payload.
func (c *Client) Record(ctx context.Context, account record.Pubkey) (record.RecordData, error) {
	raw, err := c.transport.Fetch(ctx, account)
	if err != nil {
		observability.RecordFetch(observability.ResultTransportError)
		return record.RecordData{}, fmt.Errorf("client: fetch %s: %w", account, err)
	}
	rec, err := record.DecodeRecordData(raw)
	if err != nil {
		observability.RecordFetch(observability.ResultDecodeError)
		observability.RecordDecodeFailure(record.KindRecordData.String(), FailureReason(err))
		c.logger.Warn().Str("account", account.String()).Int("bytes", len(raw)).Err(err).Msg("record decode failed")
		return record.RecordData{}, fmt.Errorf("client: decode %s: %w", account, err)
	}
	observability.RecordFetch(observability.ResultOK)
	return rec, nil
}

// FailureReason buckets a codec error for metrics labels.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, record.ErrMalformedLength):
		return "malformed_length"
	case errors.Is(err, record.ErrTruncated):
		return "truncated"
	case errors.Is(err, record.ErrUnknownKind):
		return "unknown_kind"
	case errors.Is(err, record.ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, record.ErrTrailingBytes):
		return "trailing_bytes"
	default:
		return "other"
	}
}
