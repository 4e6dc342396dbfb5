package message

import (
	"fmt"
	"strconv"
)

// Envelope is the unit exchanged between nodes. An empty Src or Dest means the
// field is absent.
type Envelope struct {
	Src  string
	Dest string
	Body Body
}

// Body carries the correlation ids and the payload of an Envelope. MsgID is
// assigned by the sender to every message it originates; InReplyTo is only set
// on direct replies.
type Body struct {
	MsgID     *int64
	InReplyTo *int64
	Payload   Payload
}

// ID returns a pointer to n, for filling the optional id fields of a Body.
func ID(n int64) *int64 {
	return &n
}

// Type returns the wire tag of the payload, or an empty string if there is
// none.
func (e Envelope) Type() string {
	if e.Body.Payload == nil {
		return ""
	}
	return e.Body.Payload.Type()
}

// String formats the envelope for logs and error messages.
func (e Envelope) String() string {
	return fmt.Sprintf("%s->%s %s", orDash(e.Src), orDash(e.Dest), e.Body)
}

// String formats the body for logs and error messages.
func (b Body) String() string {
	t := "<none>"
	if b.Payload != nil {
		t = b.Payload.Type()
	}
	return fmt.Sprintf("{type:%s msg_id:%s in_reply_to:%s payload:%+v}",
		t, optional(b.MsgID), optional(b.InReplyTo), b.Payload)
}

func optional(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
