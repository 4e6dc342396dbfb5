// Package message defines the envelopes exchanged by broadcast nodes and their
// newline-delimited JSON wire format.
//
// An Envelope carries a source, a destination and a Body. The Body holds the
// correlation ids (msg_id, in_reply_to) and exactly one Payload. Payloads form
// a closed set of variants, discriminated on the wire by the "type" field and
// flattened into the body object:
//
//  {"src":"c1","dest":"n1","body":{"type":"broadcast","msg_id":3,"message":42}}
//
// The outer object is the maelstrom.Message of the jepsen-io maelstrom Go
// library; the body is encoded and decoded by Body.MarshalJSON and
// Body.UnmarshalJSON.
package message
