package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

const msgNoRecords = "No records found matching search criteria."

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func printTable(out io.Writer, headers []string, rows [][]string) {
	if 0 == len(rows) {
		if !quiet {
			fmt.Fprintln(out, msgNoRecords)
		}
		return
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()
}

// printRefs writes one reference per line when quiet, a table otherwise.
func printRefs(out io.Writer, refs []mo.Reference) {
	if quiet {
		for _, ref := range refs {
			fmt.Fprintln(out, ref.String())
		}
		return
	}
	rows := make([][]string, len(refs))
	for x, ref := range refs {
		rows[x] = []string{ref.Type, ref.Value}
	}
	printTable(out, []string{"Type", "Value"}, rows)
}

// printValues writes properties sorted by name, rendering structured values as
// flow style YAML.
func printValues(out io.Writer, values map[string]interface{}) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, formatValue(values[k])})
	}
	printTable(out, []string{"Property", "Value"}, rows)
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}
	b, err := yaml.Marshal(v)
	if nil != err {
		return fmt.Sprintf("%v", v)
	}
	return string(trimNewline(b))
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && '\n' == b[len(b)-1] {
		b = b[:len(b)-1]
	}
	return b
}
