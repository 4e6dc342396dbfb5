// Package peers implements the collections of node ids a broadcast node keeps
// track of, and the naming convention used to tell network peers apart from
// external clients.
//
// A node learns the ids of every node in the network when it is initialised,
// and gossips with a subset of them, its neighbors. The neighbor set starts as
// every other node and may later be replaced by a topology update.
//
// Messages can come from peers or from clients. Only peers take part in
// anti-entropy, so the node needs to recognise them by id alone. Maelstrom
// names nodes n1, n2, ... and clients c1, c2, ..., which is why the default
// Matcher accepts ids starting with "n". The convention is an assumption about
// the environment: if it does not hold, senders that are not recognised are
// simply never swept.
package peers
