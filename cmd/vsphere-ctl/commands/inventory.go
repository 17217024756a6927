package commands

import (
	"github.com/spf13/cobra"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

var vmsCommand = &cobra.Command{
	Use:   "vms",
	Short: "List virtual machines and their power state",
	Args:  cobra.NoArgs,
	RunE:  vmsList,
}

var findCommand = &cobra.Command{
	Use:   "find <type> <name> [<name>...]",
	Short: "Find managed objects of a type by name",
	Args:  cobra.MinimumNArgs(2),
	RunE:  find,
}

var propsCommand = &cobra.Command{
	Use:   "props <type> <id> [<path>...]",
	Short: "Show properties of one managed object",
	Long: `Shows the properties of the managed object identified by type and id.
    Without paths every property is retrieved.`,
	Args: cobra.MinimumNArgs(2),
	RunE: props,
}

func init() {
	for _, cmd := range []*cobra.Command{vmsCommand, findCommand} {
		cmd.Flags().StringVarP(
			&flagContainer,
			"container", "",
			"",
			"Container to search as Type:Value. Defaults to the root folder.",
		)
	}
}

func container(root mo.Reference) (mo.Reference, error) {
	if "" == flagContainer {
		return root, nil
	}
	return mo.ParseReference(flagContainer)
}

func vmsList(cmd *cobra.Command, args []string) error {
	ctx, client, done, err := connect(cmd)
	if nil != err {
		return err
	}
	defer done()

	in, err := container(client.RootFolder())
	if nil != err {
		return err
	}
	states, err := client.Inventory.PowerStatesInContainer(ctx, in)
	if nil != err {
		return err
	}

	rows := make([][]string, len(states))
	for x, state := range states {
		rows[x] = []string{state.Name, state.Ref.Value, state.PowerState}
	}
	printTable(cmd.OutOrStdout(), []string{"Name", "ID", "Power State"}, rows)
	return nil
}

func find(cmd *cobra.Command, args []string) error {
	ctx, client, done, err := connect(cmd)
	if nil != err {
		return err
	}
	defer done()

	in, err := container(client.RootFolder())
	if nil != err {
		return err
	}
	refs, err := client.Inventory.ListByTypeAndName(ctx, in, args[0], args[1:]...)
	if nil != err {
		return err
	}
	printRefs(cmd.OutOrStdout(), refs)
	return nil
}

func props(cmd *cobra.Command, args []string) error {
	ctx, client, done, err := connect(cmd)
	if nil != err {
		return err
	}
	defer done()

	sel := spec.All()
	if len(args) > 2 {
		sel = spec.Paths(args[2:]...)
	}
	objects, err := client.Inventory.GetProperties(ctx, mo.NewReference(args[0], args[1]), sel)
	if nil != err {
		return err
	}
	for _, obj := range objects {
		printValues(cmd.OutOrStdout(), obj.Props)
	}
	return nil
}
