package main

import (
	"bytes"
	"testing"

	"github.com/aklinde/tick/internal/logging"
)

func TestStoreLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.New(&buf, logging.Options{Level: "warn"})

	for _, args := range [][]string{nil, {"ls"}, {"add", "Buy milk"}} {
		if got := storeLogger(base, args); got != base {
			t.Errorf("storeLogger(%v) swapped the logger, want the stderr one kept", args)
		}
	}

	quiet := storeLogger(base, []string{"ui"})
	if quiet == base {
		t.Fatal("storeLogger(ui) = base, want a discard logger")
	}
	quiet.Warn("boom")
	if buf.Len() != 0 {
		t.Errorf("discard logger wrote %q", buf.String())
	}

	base.Warn("open data dir")
	if buf.Len() == 0 {
		t.Error("base logger wrote nothing, want startup failures to reach it")
	}
}
