// Package config defines the configuration for a broadcast node.
//
// Regardless of how the node is started, directly from Go code or as a
// standalone process from the command line, it uses the Config object defined
// in this package to store and forward configuration options. When started
// from the command line, options can also be read from a file in the data
// directory, defined by Config.DataDir:
//
//  broadcast.toml // or broadcast.json, broadcast.yaml
//
// Standard output carries protocol traffic, so logs always go to standard
// error, and optionally to the file named by Config.LogFile.
package config
