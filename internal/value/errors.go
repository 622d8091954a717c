package value

import (
	"errors"
	"strconv"
)

var (
	errNotIndexable    = errors.New("value does not support indexing")
	errIndexOutOfRange = errors.New("index out of range")
)

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
