package config

import (
	"strconv"
	"strings"
)

// GoString renders a deterministic single-line debug form, used by the %#v verb.
func (c AppConfig) GoString() string {
	var b strings.Builder
	b.WriteString("AppConfig{Name: ")
	b.WriteString(strconv.Quote(c.Name))
	b.WriteString(", Host: ")
	b.WriteString(strconv.Quote(c.Host))
	b.WriteString(", Port: ")
	b.WriteString(strconv.Itoa(c.Port))
	b.WriteString(", Environment: ")
	b.WriteString(strconv.Quote(c.Environment))
	b.WriteString(", DataDir: ")
	b.WriteString(strconv.Quote(c.DataDir))
	b.WriteString(", RequestTimeout: ")
	b.WriteString(c.RequestTimeout.String())
	b.WriteString(", Tags: [")
	for i, tag := range c.Tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(tag))
	}
	b.WriteString("]}")
	return b.String()
}
