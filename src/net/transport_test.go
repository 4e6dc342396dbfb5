package net

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mosaicnetworks/broadcast/src/common"
	"github.com/mosaicnetworks/broadcast/src/message"
)

const (
	INMEM = iota
	LINE
	numTestTransports // NOTE: must be last
)

func NewTestTransport(ttype int, addr string, t *testing.T) Transport {
	switch ttype {
	case INMEM:
		it := NewInmemTransport(addr, common.NewTestEntry(t, common.TestLogLevel))
		it.Listen()
		return it
	case LINE:
		lt := NewLineTransport(strings.NewReader(""), new(bytes.Buffer), common.NewTestEntry(t, common.TestLogLevel))
		lt.Listen()
		return lt
	default:
		panic("Unknown transport type")
	}
}

func testEnvelope(src, dest string, id int64, value int64) message.Envelope {
	return message.Envelope{
		Src:  src,
		Dest: dest,
		Body: message.Body{MsgID: message.ID(id), Payload: message.Broadcast{Message: value}},
	}
}

func receive(t *testing.T, ch <-chan message.Envelope) message.Envelope {
	t.Helper()
	select {
	case env, ok := <-ch:
		if !ok {
			t.Fatalf("consumer closed")
		}
		return env
	case <-time.After(time.Second):
		t.Fatalf("timeout")
	}
	return message.Envelope{}
}

func expectClosed(t *testing.T, ch <-chan message.Envelope) {
	t.Helper()
	select {
	case env, ok := <-ch:
		if ok {
			t.Fatalf("unexpected envelope %v", env)
		}
	case <-time.After(time.Second):
		t.Fatalf("consumer should be closed")
	}
}

func TestTransport_StartStop(t *testing.T) {
	for ttype := 0; ttype < numTestTransports; ttype++ {
		trans := NewTestTransport(ttype, "n1", t)
		if err := trans.Close(); err != nil {
			t.Fatalf("err: %v", err)
		}
		if err := trans.Send(testEnvelope("n1", "n2", 1, 1)); err != ErrTransportShutdown {
			t.Fatalf("Send after Close should return ErrTransportShutdown, got %v", err)
		}
	}
}

func TestLineTransport_Receive(t *testing.T) {
	input := strings.Join([]string{
		`{"src":"c1","dest":"n1","body":{"type":"init","msg_id":1,"node_id":"n1","node_ids":["n1","n2"]}}`,
		``,
		`this is not json`,
		`{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":2,"echo":"hi"}}`,
		`{"src":"n2","dest":"n1","body":{"type":"broadcast","msg_id":3,"message":9}}`,
	}, "\n")

	trans := NewLineTransport(strings.NewReader(input), new(bytes.Buffer), common.NewTestEntry(t, common.TestLogLevel))
	defer trans.Close()
	trans.Listen()

	first := receive(t, trans.Consumer())
	expected := message.Envelope{
		Src:  "c1",
		Dest: "n1",
		Body: message.Body{
			MsgID:   message.ID(1),
			Payload: message.Init{NodeID: "n1", NodeIDs: []string{"n1", "n2"}},
		},
	}
	if !reflect.DeepEqual(expected, first) {
		t.Fatalf("expected %v, got %v", expected, first)
	}

	second := receive(t, trans.Consumer())
	if !reflect.DeepEqual(testEnvelope("n2", "n1", 3, 9), second) {
		t.Fatalf("malformed lines should be skipped, got %v", second)
	}

	expectClosed(t, trans.Consumer())
}

func TestLineTransport_Send(t *testing.T) {
	out := new(bytes.Buffer)
	trans := NewLineTransport(strings.NewReader(""), out, common.NewTestEntry(t, common.TestLogLevel))
	defer trans.Close()

	envs := []message.Envelope{
		testEnvelope("n1", "n2", 1, 5),
		{
			Src:  "n1",
			Dest: "c1",
			Body: message.Body{MsgID: message.ID(2), InReplyTo: message.ID(7), Payload: message.BroadcastOk{}},
		},
	}
	for _, env := range envs {
		if err := trans.Send(env); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(envs) {
		t.Fatalf("expected %d lines, got %q", len(envs), out.String())
	}
	for i, line := range lines {
		env, err := message.Decode([]byte(line))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if !reflect.DeepEqual(envs[i], env) {
			t.Fatalf("line %d: expected %v, got %v", i, envs[i], env)
		}
	}
}

func TestLineTransport_SendWithoutPayload(t *testing.T) {
	out := new(bytes.Buffer)
	trans := NewLineTransport(strings.NewReader(""), out, common.NewTestEntry(t, common.TestLogLevel))
	defer trans.Close()

	if err := trans.Send(message.Envelope{Src: "n1", Dest: "n2"}); err == nil {
		t.Fatalf("Send should fail without a payload")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", out.String())
	}
}

func TestInmemTransport_Route(t *testing.T) {
	trans1 := NewTestTransport(INMEM, "n1", t).(*InmemTransport)
	defer trans1.Close()
	trans2 := NewTestTransport(INMEM, "n2", t).(*InmemTransport)
	defer trans2.Close()

	trans1.Connect("n2", trans2)
	trans2.Connect("n1", trans1)

	for i := int64(1); i <= 3; i++ {
		if err := trans1.Send(testEnvelope("n1", "n2", i, i*10)); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	for i := int64(1); i <= 3; i++ {
		env := receive(t, trans2.Consumer())
		if !reflect.DeepEqual(testEnvelope("n1", "n2", i, i*10), env) {
			t.Fatalf("expected envelope %d in order, got %v", i, env)
		}
	}

	reply := testEnvelope("n2", "c1", 4, 0)
	if err := trans2.Send(reply); err != nil {
		t.Fatalf("err: %v", err)
	}
	if u := trans2.Undelivered(); !reflect.DeepEqual(u, []message.Envelope{reply}) {
		t.Fatalf("envelopes to clients should be kept aside, got %v", u)
	}

	trans2.Disconnect("n1")
	if err := trans2.Send(testEnvelope("n2", "n1", 5, 1)); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(trans2.Undelivered()) != 2 {
		t.Fatalf("envelope to a disconnected peer should not be routed")
	}
}

func TestInmemTransport_Drop(t *testing.T) {
	trans1 := NewTestTransport(INMEM, "n1", t).(*InmemTransport)
	defer trans1.Close()
	trans2 := NewTestTransport(INMEM, "n2", t).(*InmemTransport)

	trans1.Connect("n2", trans2)
	trans1.SetDrop(func(env message.Envelope) bool {
		return env.Body.Payload.(message.Broadcast).Message%2 == 0
	})

	for i := int64(1); i <= 4; i++ {
		if err := trans1.Send(testEnvelope("n1", "n2", i, i)); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	if env := receive(t, trans2.Consumer()); env.Body.Payload != (message.Broadcast{Message: 1}) {
		t.Fatalf("expected 1, got %v", env)
	}
	if env := receive(t, trans2.Consumer()); env.Body.Payload != (message.Broadcast{Message: 3}) {
		t.Fatalf("expected 3, got %v", env)
	}

	trans2.Close()
	expectClosed(t, trans2.Consumer())
}

func TestRandomDrop(t *testing.T) {
	never := RandomDrop(1, 0)
	always := RandomDrop(1, 1)

	for i := 0; i < 100; i++ {
		if never(message.Envelope{}) {
			t.Fatalf("p=0 should never drop")
		}
		if !always(message.Envelope{}) {
			t.Fatalf("p=1 should always drop")
		}
	}
}
