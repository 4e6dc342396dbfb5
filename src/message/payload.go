package message

// Payload type tags as they appear in the "type" field of a body.
const (
	TypeInit        = "init"
	TypeInitOk      = "init_ok"
	TypeBroadcast   = "broadcast"
	TypeBroadcastOk = "broadcast_ok"
	TypeRead        = "read"
	TypeReadOk      = "read_ok"
	TypeTopology    = "topology"
	TypeTopologyOk  = "topology_ok"
)

// Payload is one of the variants declared in this file. The set is closed:
// the unexported marker method keeps other packages from adding variants.
type Payload interface {
	// Type returns the wire tag of the variant.
	Type() string

	payload()
}

// Init assigns a node its id and tells it about every node in the network.
type Init struct {
	NodeID  string   `json:"node_id"`
	NodeIDs []string `json:"node_ids"`
}

// InitOk acknowledges an Init.
type InitOk struct{}

// Broadcast carries a value to deliver. Clients and peers use the same shape.
type Broadcast struct {
	Message int64 `json:"message"`
}

// BroadcastOk acknowledges a Broadcast.
type BroadcastOk struct{}

// Read asks a node for every value it has delivered.
type Read struct{}

// ReadOk answers a Read.
type ReadOk struct {
	Messages []int64 `json:"messages"`
}

// Topology maps node ids to the neighbors they should gossip with.
type Topology struct {
	Topology map[string][]string `json:"topology"`
}

// TopologyOk acknowledges a Topology.
type TopologyOk struct{}

func (Init) Type() string        { return TypeInit }
func (InitOk) Type() string      { return TypeInitOk }
func (Broadcast) Type() string   { return TypeBroadcast }
func (BroadcastOk) Type() string { return TypeBroadcastOk }
func (Read) Type() string        { return TypeRead }
func (ReadOk) Type() string      { return TypeReadOk }
func (Topology) Type() string    { return TypeTopology }
func (TopologyOk) Type() string  { return TypeTopologyOk }

func (Init) payload()        {}
func (InitOk) payload()      {}
func (Broadcast) payload()   {}
func (BroadcastOk) payload() {}
func (Read) payload()        {}
func (ReadOk) payload()      {}
func (Topology) payload()    {}
func (TopologyOk) payload()  {}
