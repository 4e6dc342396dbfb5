// Package broadcast assembles a runnable broadcast node.
//
// An Engine owns a node.BroadcastNode, a net.Transport and, unless disabled, a
// service.Service. Run reads envelopes from the transport, hands each one to
// the node, and sends whatever the node returns, in order, before reading the
// next one:
//
//	conf := config.NewDefaultConfig()
//	engine := broadcast.NewEngine(conf, nil) // stdin/stdout
//	if err := engine.Init(); err != nil {
//		...
//	}
//	err := engine.Run() // returns at end of input
//
// Envelopes the node cannot process are logged and skipped. Failing to send an
// envelope stops the engine.
package broadcast
