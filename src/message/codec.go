package message

import (
	"encoding/json"
	"errors"
	"fmt"

	maelstrom "github.com/jepsen-io/maelstrom/demo/go"
)

var (
	// ErrMissingType is returned when a body has no "type" field.
	ErrMissingType = errors.New("body has no type")

	// ErrUnknownType is returned when a body's "type" is not one of the
	// payload variants of this package.
	ErrUnknownType = errors.New("unknown body type")

	// ErrMissingBody is returned when an envelope has no body.
	ErrMissingBody = errors.New("envelope has no body")

	// ErrMissingPayload is returned when encoding a Body without a Payload.
	ErrMissingPayload = errors.New("body has no payload")
)

// header holds the body fields shared by every payload variant.
type header struct {
	Type      string `json:"type"`
	MsgID     *int64 `json:"msg_id,omitempty"`
	InReplyTo *int64 `json:"in_reply_to,omitempty"`
}

// MarshalJSON flattens the payload fields into the body object, next to type,
// msg_id and in_reply_to.
func (b Body) MarshalJSON() ([]byte, error) {
	if b.Payload == nil {
		return nil, ErrMissingPayload
	}

	raw, err := json.Marshal(b.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", b.Payload.Type(), err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flattening %s payload: %w", b.Payload.Type(), err)
	}

	h, err := json.Marshal(header{
		Type:      b.Payload.Type(),
		MsgID:     b.MsgID,
		InReplyTo: b.InReplyTo,
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(h, &fields); err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}

// UnmarshalJSON reads the header fields and decodes the rest of the object
// into the payload variant named by "type".
func (b *Body) UnmarshalJSON(data []byte) error {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	if h.Type == "" {
		return ErrMissingType
	}

	p, err := decodePayload(h.Type, data)
	if err != nil {
		return err
	}

	b.MsgID = h.MsgID
	b.InReplyTo = h.InReplyTo
	b.Payload = p
	return nil
}

func decodePayload(typ string, data []byte) (Payload, error) {
	switch typ {
	case TypeInit:
		return decodeAs[Init](data)
	case TypeInitOk:
		return decodeAs[InitOk](data)
	case TypeBroadcast:
		return decodeAs[Broadcast](data)
	case TypeBroadcastOk:
		return decodeAs[BroadcastOk](data)
	case TypeRead:
		return decodeAs[Read](data)
	case TypeReadOk:
		return decodeAs[ReadOk](data)
	case TypeTopology:
		return decodeAs[Topology](data)
	case TypeTopologyOk:
		return decodeAs[TopologyOk](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func decodeAs[T Payload](data []byte) (Payload, error) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", p.Type(), err)
	}
	return p, nil
}

// ToWire converts the envelope into the maelstrom wire message, encoding the
// body.
func (e Envelope) ToWire() (maelstrom.Message, error) {
	body, err := json.Marshal(e.Body)
	if err != nil {
		return maelstrom.Message{}, err
	}
	return maelstrom.Message{
		Src:  e.Src,
		Dest: e.Dest,
		Body: body,
	}, nil
}

// FromWire decodes the body of a maelstrom wire message.
func FromWire(m maelstrom.Message) (Envelope, error) {
	if len(m.Body) == 0 {
		return Envelope{}, ErrMissingBody
	}

	var body Body
	if err := json.Unmarshal(m.Body, &body); err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Src:  m.Src,
		Dest: m.Dest,
		Body: body,
	}, nil
}

// Encode returns the single-line JSON encoding of the envelope, without the
// trailing newline.
func Encode(e Envelope) ([]byte, error) {
	m, err := e.ToWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses one line of the wire stream.
func Decode(line []byte) (Envelope, error) {
	var m maelstrom.Message
	if err := json.Unmarshal(line, &m); err != nil {
		return Envelope{}, err
	}
	return FromWire(m)
}
