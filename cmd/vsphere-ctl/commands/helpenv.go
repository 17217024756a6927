package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkenney/vsphere/pkg/config"
)

var helpEnvCommand = &cobra.Command{
	Use:   "helpenv",
	Short: "Show environment variable help",
	Long: `Shows a table of information about environment variables, the
    associated CLI option, and the currently evaluated value of that variable
    that can be used to influence vsphere-ctl's behaviour.`,
	Run: showEnvHelp,
}

func showEnvHelp(cmd *cobra.Command, args []string) {
	defaults := config.Defaults()
	password := ""
	if "" != os.Getenv(config.EnvPassword) {
		password = "(set)"
	}
	headers := []string{
		"Env Name",
		"CLI Option",
		"Value",
	}
	rows := [][]string{
		{config.EnvHost, "--host", defaults.Host},
		{config.EnvUser, "--user", defaults.User},
		{config.EnvPassword, "--password", password},
		{config.EnvVerifyTLS, "--insecure", strconv.FormatBool(defaults.VerifyTLS)},
		{config.EnvWatchTimeoutSeconds, "--watch-timeout", strconv.Itoa(int(defaults.WatchTimeout.Seconds()))},
		{config.EnvMaxWaitSeconds, "", strconv.Itoa(defaults.MaxWaitSeconds)},
		{config.EnvPollQPS, "", strconv.Itoa(defaults.PollQPS)},
		{config.EnvPollBurst, "", strconv.Itoa(defaults.PollBurst)},
		{config.EnvMaxConcurrentOps, "--max-concurrent-ops", strconv.Itoa(defaults.MaxConcurrentOps)},
		{"VSPHERE_CONFIG", "--config", configPath},
		{"LOG_LEVEL", "--log-level", logLevel},
		{"LOG_FORMAT", "--log-format", logFormat},
	}
	printTable(cmd.OutOrStdout(), headers, rows)
}
