package node

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Snapshot is a copy of the state of a BroadcastNode at a point in time.
type Snapshot struct {
	ID        string             `json:"id"`
	Neighbors []string           `json:"neighbors"`
	Delivered []int64            `json:"delivered"`
	Seen      map[string][]int64 `json:"seen"`
}

// Snapshot copies the current state of the node.
func (n *BroadcastNode) Snapshot() Snapshot {
	seen := make(map[string][]int64, len(n.seen))
	for p, s := range n.seen {
		seen[p] = s.sorted()
	}

	return Snapshot{
		ID:        n.id,
		Neighbors: n.neighbors.Sorted(),
		Delivered: n.delivered.sorted(),
		Seen:      seen,
	}
}

// Marshal returns the canonical JSON encoding of the snapshot: map keys are
// sorted, so equal snapshots encode to equal bytes.
func (s *Snapshot) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal decodes a snapshot encoded by Marshal.
func (s *Snapshot) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(s)
}
