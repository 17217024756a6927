package main

import (
	"os"

	"github.com/bdlm/log"

	"github.com/mkenney/vsphere/cmd/vsphere-ctl/commands"
)

func main() {
	if err := commands.RootCommand.Execute(); nil != err {
		log.WithField("err", err).Debug("command failed")
		os.Exit(1)
	}
}
