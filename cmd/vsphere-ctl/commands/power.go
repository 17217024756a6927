package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/power"
)

var byRef bool

var powerCommand = &cobra.Command{
	Use:   "power <op> <vm> [<vm>...]",
	Short: "Run a power operation on virtual machines",
	Long: fmt.Sprintf(`Runs a power operation on every named virtual machine and waits for the
    tasks to finish. Supported operations: %s.

    With --by-ref, machines are given by id instead of name.`, strings.Join(ops(), ", ")),
	Args: cobra.MinimumNArgs(2),
	RunE: powerOp,
}

func init() {
	powerCommand.Flags().BoolVarP(
		&byRef,
		"by-ref", "",
		false,
		"Identify virtual machines by id (vm-123) instead of name.",
	)
}

func ops() []string {
	names := make([]string, 0, len(power.Commands))
	for op := range power.Commands {
		names = append(names, string(op))
	}
	sort.Strings(names)
	return names
}

func powerOp(cmd *cobra.Command, args []string) error {
	op := power.Op(args[0])
	if _, err := op.Command(); nil != err {
		return err
	}

	ctx, client, done, err := connect(cmd)
	if nil != err {
		return err
	}
	defer done()

	var outcomes []power.Outcome
	if byRef {
		refs := make([]mo.Reference, 0, len(args)-1)
		for _, id := range args[1:] {
			refs = append(refs, mo.NewReference(mo.TypeVirtualMachine, id))
		}
		outcomes, err = client.Power.ByRef(ctx, op, refs...)
	} else {
		outcomes, err = client.Power.ByName(ctx, op, args[1:]...)
	}

	var perr *power.Error
	if nil != err && !errors.As(err, &perr) {
		return err
	}

	rows := make([][]string, len(outcomes))
	for x, outcome := range outcomes {
		status := "ok"
		if outcome.Failed {
			status = "failed"
		}
		rows[x] = []string{outcome.Ref.Value, status, formatValue(outcome.Result)}
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "Status", "Result"}, rows)
	return err
}
