package commands

import (
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// hclogAdapter exposes an hclog.Logger as a dsp.Logger.
type hclogAdapter struct {
	logger hclog.Logger
}

// NewLogger returns a dsp.Logger writing leveled, human readable lines to w.
func NewLogger(w io.Writer, level hclog.Level) dsp.Logger {
	return &hclogAdapter{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "dsp",
			Level:  level,
			Output: w,
		}),
	}
}

func (a *hclogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, flatten(fields)...)
}

func (a *hclogAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, flatten(fields)...)
}

func (a *hclogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, flatten(fields)...)
}

func (a *hclogAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, flatten(fields)...)
}

// flatten turns fields into hclog key/value pairs in key order.
func flatten(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
