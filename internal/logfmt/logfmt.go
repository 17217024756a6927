/*
Package logfmt defines the log formats of the vsphere tools in the form of:
[ISO-8601-date] [level] [hostname] [caller] [message] [sorted fields]

	log.SetFormatter(&logfmt.TextFormat{})
	log.SetFormatter(&logfmt.JSONFormat{})
*/
package logfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"text/template"

	"github.com/bdlm/log"
)

/*
RFC3339Milli defines an RFC3339 date format with miliseconds
*/
const RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"

const (
	modulePath  = "github.com/mkenney/vsphere"
	loggerPath  = "github.com/bdlm/log"
	callerDepth = 2
)

/*
Configure sets the level and format of the standard logger. An unparsable
level falls back to debug and is reported as an error. format is "json" or
anything else for text.
*/
func Configure(levelFlag, format string) error {
	if "" == levelFlag {
		levelFlag = "info"
	}
	level, err := log.ParseLevel(levelFlag)
	if nil != err {
		level = log.DebugLevel
	}

	if "json" == format {
		log.SetFormatter(&JSONFormat{})
	} else {
		log.SetFormatter(&TextFormat{})
	}
	log.SetLevel(level)
	return err
}

func getCaller() string {
	for a := callerDepth; ; a++ {
		pc, file, line, ok := runtime.Caller(a)
		if !ok {
			return ""
		}
		lower := strings.ToLower(file)
		if strings.Contains(lower, loggerPath) || strings.HasSuffix(path.Dir(lower), "internal/logfmt") {
			continue
		}
		return strings.Replace(
			fmt.Sprintf("%s:%d %s", path.Base(file), line, runtime.FuncForPC(pc).Name()),
			modulePath, "", -1,
		)
	}
}

type logData struct {
	Timestamp string      `json:"time"`
	Level     string      `json:"level"`
	Hostname  string      `json:"host"`
	Caller    string      `json:"caller"`
	Message   string      `json:"msg"`
	Data      []dataField `json:"data"`
}

type dataField struct {
	Key string `json:"key"`
	Msg string `json:"msg"`
}

/*
JSONFormat writes one JSON object per entry.
*/
type JSONFormat struct{}

/*
Format implements log.Formatter.
*/
func (l *JSONFormat) Format(entry *log.Entry) ([]byte, error) {
	serialized, err := json.Marshal(getData(entry))
	if nil != err {
		return nil, fmt.Errorf("failed to marshal log data as JSON: %s", err.Error())
	}
	return append(serialized, '\n'), nil
}

/*
TextFormat writes one key="value" line per entry.
*/
type TextFormat struct{}

/*
Format implements log.Formatter.
*/
func (l *TextFormat) Format(entry *log.Entry) ([]byte, error) {
	logLine := &bytes.Buffer{}
	if err := textTemplate.Execute(logLine, getData(entry)); nil != err {
		return nil, err
	}
	logLine.WriteByte('\n')
	return logLine.Bytes(), nil
}

var textTemplate = template.Must(
	template.New("log").Parse(`time="{{.Timestamp}}" host="{{.Hostname}}" level="{{.Level}}" caller="{{.Caller}}" msg="{{.Message}}"{{range .Data}} {{.Key}}="{{.Msg}}"{{end}}`),
)

func hostname() string {
	if host := os.Getenv("HOSTNAME"); "" != host {
		return host
	}
	host, _ := os.Hostname()
	return host
}

// levelName returns the lower case name of the entry's level.
func levelName(entry *log.Entry) string {
	switch entry.Level {
	case log.PanicLevel:
		return "panic"
	case log.FatalLevel:
		return "fatal"
	case log.ErrorLevel:
		return "error"
	case log.WarnLevel:
		return "warn"
	case log.InfoLevel:
		return "info"
	case log.DebugLevel:
		return "debug"
	}
	return "unknown"
}

/*
getData extracts log data from the entry. Fields are sorted by key.
*/
func getData(entry *log.Entry) *logData {
	data := &logData{
		Timestamp: entry.Time.Format(RFC3339Milli),
		Level:     levelName(entry),
		Hostname:  hostname(),
		Caller:    getCaller(),
		Message:   entry.Message,
		Data:      make([]dataField, 0, len(entry.Data)),
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.Data = append(data.Data, dataField{
			Key: k,
			Msg: fmt.Sprintf("%v", entry.Data[k]),
		})
	}
	return data
}
