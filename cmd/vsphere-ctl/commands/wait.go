package commands

import (
	"github.com/spf13/cobra"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

var waitCommand = &cobra.Command{
	Use:   "wait <type> <id> <property> <end-wait-property> <value> [<value>...]",
	Short: "Wait for a property of a managed object to reach a value",
	Long: `Watches property of the managed object identified by type and id until
    end-wait-property holds one of the given values, then prints the latest
    value of property. For example:

        vsphere-ctl wait VirtualMachine vm-123 summary.runtime.powerState powerState poweredOn`,
	Args: cobra.MinimumNArgs(5),
	RunE: wait,
}

func wait(cmd *cobra.Command, args []string) error {
	ctx, client, done, err := connect(cmd)
	if nil != err {
		return err
	}
	defer done()

	expected := make([]interface{}, 0, len(args)-4)
	for _, v := range args[4:] {
		expected = append(expected, v)
	}
	res, err := client.WaitForValues(
		ctx,
		mo.NewReference(args[0], args[1]),
		[]string{args[2]},
		[]string{args[3]},
		expected...,
	)
	if nil != err {
		return err
	}
	printValues(cmd.OutOrStdout(), res)
	return nil
}
