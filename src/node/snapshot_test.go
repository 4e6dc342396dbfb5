package node

import (
	"reflect"
	"testing"

	"github.com/mosaicnetworks/broadcast/src/message"
)

func TestSnapshot(t *testing.T) {
	n, _ := newTestNode(t)
	initNode(t, n, "n1", "n1", "n2", "n3")

	mustProcess(t, n, request("n3", "n1", 1, message.Broadcast{Message: 4}))
	mustProcess(t, n, request("c1", "n1", 2, message.Broadcast{Message: 2}))

	expected := Snapshot{
		ID:        "n1",
		Neighbors: []string{"n2", "n3"},
		Delivered: []int64{2, 4},
		Seen:      map[string][]int64{"n3": {4}},
	}

	snap := n.Snapshot()
	if !reflect.DeepEqual(expected, snap) {
		t.Fatalf("expected %+v, got %+v", expected, snap)
	}

	raw, err := snap.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var decoded Snapshot
	if err := decoded.Unmarshal(raw); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(expected, decoded) {
		t.Fatalf("expected %+v, got %+v", expected, decoded)
	}
}

func TestSnapshotMarshalIsCanonical(t *testing.T) {
	a := Snapshot{
		ID:        "n1",
		Neighbors: []string{},
		Delivered: []int64{1},
		Seen:      map[string][]int64{"n2": {1}, "n3": {}, "n4": {1}},
	}
	b := Snapshot{
		ID:        "n1",
		Neighbors: []string{},
		Delivered: []int64{1},
		Seen:      map[string][]int64{"n4": {1}, "n2": {1}, "n3": {}},
	}

	ra, err := a.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	if string(ra) != string(rb) {
		t.Fatalf("equal snapshots encoded differently:\n%s\n%s", ra, rb)
	}
}

func TestCounterIDGenerator(t *testing.T) {
	g := NewCounterIDGenerator(5)
	if g.Peek() != 5 {
		t.Fatalf("Peek should be 5, not %d", g.Peek())
	}
	for i := int64(5); i < 10; i++ {
		if id := g.Next(); id != i {
			t.Fatalf("Next should be %d, not %d", i, id)
		}
	}
}

func TestValueSetMissing(t *testing.T) {
	delivered := make(valueSet)
	for _, v := range []int64{3, 1, 2} {
		delivered.add(v)
	}
	known := valueSet{1: {}}

	if m := delivered.missing(known, 4); !reflect.DeepEqual(m, []int64{2, 3}) {
		t.Fatalf("missing should be [2 3], not %v", m)
	}
	if m := delivered.missing(known, 3); !reflect.DeepEqual(m, []int64{2}) {
		t.Fatalf("missing should exclude the current value, got %v", m)
	}
}
