package commands

import (
	"github.com/mosaicnetworks/broadcast/src/broadcast"
	"github.com/mosaicnetworks/broadcast/src/net"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that starts a broadcast node on standard input
//and standard output
func NewRunCmd() *cobra.Command {
	conf := NewDefaultCLIConfig()
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run node",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, v, conf)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBroadcast(cmd, conf)
		},
	}
	AddRunFlags(cmd, conf)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runBroadcast(cmd *cobra.Command, conf *CLIConfig) error {
	logger := conf.Broadcast.Logger()

	trans := net.NewLineTransport(
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
		logger.WithField("component", "transport"),
	)

	engine := broadcast.NewEngine(&conf.Broadcast, trans)

	if err := engine.Init(); err != nil {
		logger.Error("Cannot initialize engine:", err)
		return err
	}

	return engine.Run()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command, conf *CLIConfig) {
	cmd.Flags().String("datadir", conf.Broadcast.DataDir, "Top-level directory for configuration")
	cmd.Flags().String("log", conf.Broadcast.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", conf.Broadcast.LogFile, "Also write logs to this file")

	// Protocol
	cmd.Flags().String("peer-prefix", conf.Broadcast.PeerPrefix, "Id prefix of network nodes; other senders are clients")

	// Service
	cmd.Flags().Bool("no-service", conf.Broadcast.NoService, "Disable HTTP service")
	cmd.Flags().StringP("service-listen", "s", conf.Broadcast.ServiceAddr, "Listen IP:Port for HTTP service")
}

func loadConfig(cmd *cobra.Command, v *viper.Viper, conf *CLIConfig) error {
	configFile, err := bindFlagsLoadViper(cmd, v, conf)
	if err != nil {
		return err
	}

	// Standard output is reserved for messages.
	conf.Broadcast.SetLogOutput(cmd.ErrOrStderr())

	logger := conf.Broadcast.Logger()

	if configFile != "" {
		logger.Debugf("Using config file: %s", configFile)
	} else {
		logger.Debugf("No config file found in: %s", conf.Broadcast.DataDir)
	}

	logger.WithFields(logrus.Fields{
		"broadcast.DataDir":     conf.Broadcast.DataDir,
		"broadcast.LogLevel":    conf.Broadcast.LogLevel,
		"broadcast.LogFile":     conf.Broadcast.LogFile,
		"broadcast.PeerPrefix":  conf.Broadcast.PeerPrefix,
		"broadcast.NoService":   conf.Broadcast.NoService,
		"broadcast.ServiceAddr": conf.Broadcast.ServiceAddr,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper. Returns the path of the
// config file, if one was found.
func bindFlagsLoadViper(cmd *cobra.Command, v *viper.Viper, conf *CLIConfig) (string, error) {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return "", err
	}

	// first unmarshal to read from CLI flags
	if err := v.Unmarshal(conf); err != nil {
		return "", err
	}

	// look for config file in [datadir]/broadcast.toml (.json, .yaml also work)
	v.SetConfigName("broadcast")
	v.AddConfigPath(conf.Broadcast.DataDir)

	configFile := ""
	if err := v.ReadInConfig(); err == nil {
		configFile = v.ConfigFileUsed()
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return "", err
	}

	// second unmarshal to read from config file
	return configFile, v.Unmarshal(conf)
}
