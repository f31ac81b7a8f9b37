package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Sink  bool
	Copy  bool
	Query bool
}

var d *debug

func init() {
	d = &debug{}
	d.Sink = boolEnv("DOCSINK_DEBUG_SINK")
	d.Copy = boolEnv("DOCSINK_DEBUG_COPY")
	d.Query = boolEnv("DOCSINK_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Sink reports whether builder events are traced.
func Sink() bool {
	return d.Sink
}

// Copy reports whether structure copies are traced.
func Copy() bool {
	return d.Copy
}

func Query() bool {
	return d.Query
}
