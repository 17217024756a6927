package watch

import (
	"reflect"
	"strings"

	"k8s.io/apimachinery/pkg/api/equality"

	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

/*
tracker accumulates the latest observed value of the watched properties.
Change names match a property when they contain it, so indexed or nested
paths such as "info.state" count toward "state".
*/
type tracker struct {
	filterProps  []string
	endWaitProps []string
	expected     []interface{}

	compare map[string]interface{}
	final   map[string]interface{}
}

func newTracker(filterProps, endWaitProps []string, expected []interface{}) *tracker {
	return &tracker{
		filterProps:  filterProps,
		endWaitProps: endWaitProps,
		expected:     expected,
		compare:      map[string]interface{}{},
		final:        map[string]interface{}{},
	}
}

/*
apply records every relevant change of set. A removed property is recorded as
the empty string.
*/
func (t *tracker) apply(set rpc.UpdateSet) {
	for _, fu := range set.FilterSet {
		for _, ou := range fu.ObjectSet {
			switch ou.Kind {
			case rpc.ObjectUpdateEnter, rpc.ObjectUpdateLeave, rpc.ObjectUpdateModify:
			default:
				continue
			}
			for _, change := range ou.ChangeSet {
				val := change.Val
				if rpc.ChangeOpRemove == change.Op {
					val = ""
				}
				record(t.compare, t.endWaitProps, change.Name, val)
				record(t.final, t.filterProps, change.Name, val)
			}
		}
	}
}

func record(dst map[string]interface{}, props []string, name string, val interface{}) {
	for _, prop := range props {
		if strings.Contains(name, prop) {
			dst[prop] = val
		}
	}
}

/*
reached reports whether any compared value equals an expected value.
*/
func (t *tracker) reached() bool {
	for _, val := range t.compare {
		for _, expected := range t.expected {
			if equal(val, expected) {
				return true
			}
		}
	}
	return false
}

/*
result returns a copy of the latest values of the filter properties.
*/
func (t *tracker) result() Result {
	res := make(Result, len(t.final))
	for k, v := range t.final {
		res[k] = v
	}
	return res
}

func equal(a, b interface{}) bool {
	return equality.Semantic.DeepEqual(normalize(a), normalize(b))
}

// normalize turns named string types, such as protocol enums, into plain
// strings.
func normalize(v interface{}) interface{} {
	if nil == v {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}
