package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bdlm/log"
	"github.com/jaypipes/envutil"
	"github.com/spf13/cobra"

	"github.com/mkenney/vsphere/internal/logfmt"
	"github.com/mkenney/vsphere/pkg/config"
	"github.com/mkenney/vsphere/pkg/vsphere"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/vim"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	quiet      bool

	// flag overrides, applied when set on the command line
	flagHost      string
	flagUser      string
	flagPassword  string
	flagInsecure  bool
	flagTimeout   int
	flagOpsLimit  int
	flagContainer string

	// dialer opens vCenter sessions; replaced in tests
	dialer rpc.Dialer = vim.Dialer{}
)

var RootCommand = &cobra.Command{
	Use:   "vsphere-ctl",
	Short: "vsphere-ctl - query and power manage vSphere inventory.",
	Long: `Query the vSphere inventory, watch managed object properties and
    run virtual machine power operations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logfmt.Configure(logLevel, logFormat); nil != err {
			log.WithField("err", err).Warnf("could not parse log level '%s', setting to 'debug'", logLevel)
		}
		return nil
	},
	SilenceUsage: true,
}

func addConnectFlags() {
	flags := RootCommand.PersistentFlags()
	flags.StringVarP(
		&configPath,
		"config", "c",
		envutil.WithDefault("VSPHERE_CONFIG", ""),
		"Path to a YAML configuration file.",
	)
	flags.StringVarP(
		&logLevel,
		"log-level", "",
		envutil.WithDefault("LOG_LEVEL", defaultLogLevel),
		"Log level (debug, info, warn, error).",
	)
	flags.StringVarP(
		&logFormat,
		"log-format", "",
		envutil.WithDefault("LOG_FORMAT", defaultLogFormat),
		"Log format (text or json).",
	)
	flags.BoolVarP(
		&quiet,
		"quiet", "q",
		false,
		"Show minimal output.",
	)
	flags.StringVarP(
		&flagHost,
		"host", "",
		"",
		"vCenter host or SDK URL. Overrides "+config.EnvHost+".",
	)
	flags.StringVarP(
		&flagUser,
		"user", "u",
		"",
		"User to log in as. Overrides "+config.EnvUser+".",
	)
	flags.StringVarP(
		&flagPassword,
		"password", "p",
		"",
		"Password to log in with. Overrides "+config.EnvPassword+".",
	)
	flags.BoolVarP(
		&flagInsecure,
		"insecure", "k",
		false,
		"Skip TLS certificate verification.",
	)
	flags.IntVarP(
		&flagTimeout,
		"watch-timeout", "",
		0,
		"Seconds to wait for a watched property. Overrides "+config.EnvWatchTimeoutSeconds+".",
	)
	flags.IntVarP(
		&flagOpsLimit,
		"max-concurrent-ops", "",
		0,
		"Power operations run at once. Overrides "+config.EnvMaxConcurrentOps+".",
	)
}

func init() {
	addConnectFlags()

	RootCommand.AddCommand(helpEnvCommand)
	RootCommand.AddCommand(vmsCommand)
	RootCommand.AddCommand(findCommand)
	RootCommand.AddCommand(propsCommand)
	RootCommand.AddCommand(powerCommand)
	RootCommand.AddCommand(waitCommand)
}

/*
loadConfig resolves the configuration from defaults, environment, the config
file and command line flags, in that order.
*/
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if nil != err {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("user") {
		cfg.User = flagUser
	}
	if flags.Changed("password") {
		cfg.Password = flagPassword
	}
	if flags.Changed("insecure") {
		cfg.VerifyTLS = !flagInsecure
	}
	if flags.Changed("watch-timeout") {
		cfg.WatchTimeout = seconds(flagTimeout)
	}
	if flags.Changed("max-concurrent-ops") {
		cfg.MaxConcurrentOps = flagOpsLimit
	}
	return cfg, nil
}

/*
connect opens a client and returns it with a context cancelled on SIGINT or
SIGTERM. The returned function closes both.
*/
func connect(cmd *cobra.Command) (context.Context, *vsphere.Client, func(), error) {
	cfg, err := loadConfig(cmd)
	if nil != err {
		return nil, nil, nil, err
	}
	log.WithField("config", cfg.String()).Debug("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	client, err := vsphere.New(ctx, cfg, dialer)
	if nil != err {
		stop()
		return nil, nil, nil, err
	}
	return ctx, client, func() {
		if err := client.Close(context.WithoutCancel(ctx)); nil != err {
			log.WithField("err", err).Warn("failed to close session")
		}
		stop()
	}, nil
}
