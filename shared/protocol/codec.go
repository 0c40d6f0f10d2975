// Package protocol encodes and decodes wire frames. Decoding reads the "type"
// discriminator first and fails closed: anything it does not recognise is an
// error the caller drops.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/automoto/arena-mp/shared/messages"
)

var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrInvalidUTF8  = errors.New("frame is not valid UTF-8")
	ErrMissingType  = errors.New("missing type discriminator")
	ErrUnknownType  = errors.New("unknown message type")
	ErrMissingField = errors.New("missing required field")
	ErrNickTooLong  = errors.New("nickname too long")
)

type envelope struct {
	Type messages.Kind `json:"type"`
}

// Decode parses one frame into its message variant.
func Decode(b []byte) (messages.Message, error) {
	if len(b) == 0 {
		return nil, ErrEmptyFrame
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return nil, ErrMissingType
	}
	dec, ok := registry[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
	msg, err := dec(b)
	if err != nil {
		return nil, err
	}
	if s, ok := msg.(messages.Sync); ok && s.Players == nil {
		s.Players = map[string]messages.Player{}
		msg = s
	}
	return msg, nil
}

// Encode serialises msg as a single JSON object with its "type" set.
func Encode(msg messages.Message) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("encode nil message")
	}
	if s, ok := msg.(messages.Sync); ok && s.Players == nil {
		s.Players = map[string]messages.Player{}
		msg = s
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Kind(), err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("encode %s: payload is not an object", msg.Kind())
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + 16 + len(msg.Kind()))
	buf.WriteString(`{"type":`)
	kind, _ := json.Marshal(msg.Kind())
	buf.Write(kind)
	if len(body) > 2 {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// MustEncode is Encode for messages built by this process, which always
// encode.
func MustEncode(msg messages.Message) []byte {
	b, err := Encode(msg)
	if err != nil {
		panic(err)
	}
	return b
}
