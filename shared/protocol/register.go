package protocol

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/automoto/arena-mp/shared/messages"
)

type decodeFunc func(payload []byte) (messages.Message, error)

var registry = make(map[messages.Kind]decodeFunc)

func init() {
	mustRegister(messages.KindJoin, func(m messages.Join) error {
		if utf8.RuneCountInString(m.Nickname) > MaxNicknameLen {
			return fmt.Errorf("%w: %d runes, max %d", ErrNickTooLong, utf8.RuneCountInString(m.Nickname), MaxNicknameLen)
		}
		return requireIDs("id", m.ID)
	})
	mustRegister(messages.KindUpdate, func(m messages.Update) error {
		return requireIDs("id", m.ID)
	})
	mustRegister(messages.KindShoot, func(m messages.Shoot) error {
		return requireIDs("id", m.ID)
	})
	// The source may be absent; the kill then scores for nobody.
	mustRegister(messages.KindHit, func(m messages.Hit) error {
		return requireIDs("targetId", m.TargetID)
	})
	mustRegister(messages.KindSync, func(m messages.Sync) error { return nil })
	mustRegister(messages.KindKill, func(m messages.Kill) error { return nil })
}

// register installs the decoder for kind. Each kind may be registered once.
func register[T messages.Message](kind messages.Kind, validate func(T) error) error {
	if _, exists := registry[kind]; exists {
		return fmt.Errorf("message kind %q already registered", kind)
	}
	registry[kind] = func(payload []byte) (messages.Message, error) {
		var out T
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		if err := validate(out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return out, nil
	}
	return nil
}

func mustRegister[T messages.Message](kind messages.Kind, validate func(T) error) {
	if err := register(kind, validate); err != nil {
		panic(err)
	}
}

func requireIDs(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

// Registered reports whether kind has a decoder.
func Registered(kind messages.Kind) bool {
	_, ok := registry[kind]
	return ok
}
