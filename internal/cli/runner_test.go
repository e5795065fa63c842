package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aklinde/tick/internal/store"
	"github.com/aklinde/tick/internal/store/localstore"
	"github.com/aklinde/tick/internal/ui"
)

type fixture struct {
	opt Options
	st  *store.Store
	out *bytes.Buffer
	err *bytes.Buffer
}

// newFixture builds Options around a fresh store seeded with titles.
// Ids are t1, t2, ... in insertion order.
func newFixture(t *testing.T, titles ...string) fixture {
	t.Helper()
	ui.SetTheme("mono")
	kv, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.Open() error = %v", err)
	}
	n := 0
	st := store.Open(kv, nil, store.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
	for _, title := range titles {
		st.Add(title)
	}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return fixture{
		opt: Options{Store: st, Out: out, Err: errOut},
		st:  st,
		out: out,
		err: errOut,
	}
}

func TestRunHelp(t *testing.T) {
	f := newFixture(t)

	if code := Run([]string{"help"}, f.opt); code != 0 {
		t.Errorf("Run(help) = %d, want 0", code)
	}
	if !strings.Contains(f.out.String(), "Usage:") {
		t.Errorf("stdout = %q, want usage text", f.out.String())
	}
}

func TestRunNoArgs(t *testing.T) {
	f := newFixture(t)

	if code := Run(nil, f.opt); code != 2 {
		t.Errorf("Run() = %d, want 2", code)
	}
	if !strings.Contains(f.err.String(), "Usage:") {
		t.Errorf("stderr = %q, want usage text", f.err.String())
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	f := newFixture(t)

	if code := Run([]string{"frobnicate"}, f.opt); code != 2 {
		t.Errorf("Run(frobnicate) = %d, want 2", code)
	}
	if !strings.Contains(f.err.String(), "unknown subcommand: frobnicate") {
		t.Errorf("stderr = %q, want unknown subcommand", f.err.String())
	}
}

func TestAddCommand(t *testing.T) {
	t.Run("joins words into one title", func(t *testing.T) {
		f := newFixture(t)

		if code := Run([]string{"add", "Buy", "milk"}, f.opt); code != 0 {
			t.Fatalf("Run(add) = %d, want 0, stderr %q", code, f.err.String())
		}
		items := f.st.Items()
		if len(items) != 1 || items[0].Title != "Buy milk" {
			t.Errorf("Items() = %v, want one %q", items, "Buy milk")
		}
		if !strings.Contains(f.out.String(), "added") {
			t.Errorf("stdout = %q, want added", f.out.String())
		}
	})

	t.Run("empty title is a usage error", func(t *testing.T) {
		f := newFixture(t)

		if code := Run([]string{"add", "   "}, f.opt); code != 2 {
			t.Errorf("Run(add blank) = %d, want 2", code)
		}
		if !strings.Contains(f.err.String(), "add: empty title") {
			t.Errorf("stderr = %q, want empty title error", f.err.String())
		}
		if f.st.Len() != 0 {
			t.Errorf("Len() = %d, want 0", f.st.Len())
		}
	})

	t.Run("missing args", func(t *testing.T) {
		f := newFixture(t)
		if code := Run([]string{"add"}, f.opt); code != 2 {
			t.Errorf("Run(add) = %d, want 2", code)
		}
	})
}

func TestDoneCommand(t *testing.T) {
	t.Run("toggles by index", func(t *testing.T) {
		f := newFixture(t, "Task One", "Task Two")

		if code := Run([]string{"done", "2"}, f.opt); code != 0 {
			t.Fatalf("Run(done 2) = %d, want 0", code)
		}
		items := f.st.Items()
		if items[0].Completed || !items[1].Completed {
			t.Errorf("Items() = %v, want only the second completed", items)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		f := newFixture(t, "Task One")

		if code := Run([]string{"done", "5"}, f.opt); code != 2 {
			t.Errorf("Run(done 5) = %d, want 2", code)
		}
		if !strings.Contains(f.err.String(), "index out of range") {
			t.Errorf("stderr = %q, want range error", f.err.String())
		}
	})

	t.Run("not a number", func(t *testing.T) {
		f := newFixture(t, "Task One")

		if code := Run([]string{"done", "two"}, f.opt); code != 2 {
			t.Errorf("Run(done two) = %d, want 2", code)
		}
		if !strings.Contains(f.err.String(), "done: not a number: two") {
			t.Errorf("stderr = %q, want number error", f.err.String())
		}
	})
}

func TestRmCommand(t *testing.T) {
	f := newFixture(t, "Task One", "Task Two")

	if code := Run([]string{"rm", "1"}, f.opt); code != 0 {
		t.Fatalf("Run(rm 1) = %d, want 0", code)
	}
	items := f.st.Items()
	if len(items) != 1 || items[0].ID != "t2" {
		t.Errorf("Items() = %v, want only t2", items)
	}
	if !strings.Contains(f.out.String(), "removed") {
		t.Errorf("stdout = %q, want removed", f.out.String())
	}
}

func TestEditCommand(t *testing.T) {
	t.Run("renames by index", func(t *testing.T) {
		f := newFixture(t, "Task One", "Task Two")

		if code := Run([]string{"edit", "1", "Updated", "Task"}, f.opt); code != 0 {
			t.Fatalf("Run(edit) = %d, want 0, stderr %q", code, f.err.String())
		}
		items := f.st.Items()
		if items[0].Title != "Updated Task" {
			t.Errorf("title = %q, want %q", items[0].Title, "Updated Task")
		}
		if items[0].ID != "t1" {
			t.Errorf("ID = %q, want t1 to survive the rename", items[0].ID)
		}
	})

	t.Run("empty title is a usage error", func(t *testing.T) {
		f := newFixture(t, "Task One")

		if code := Run([]string{"edit", "1", "   "}, f.opt); code != 2 {
			t.Errorf("Run(edit blank) = %d, want 2", code)
		}
		if got := f.st.Items()[0].Title; got != "Task One" {
			t.Errorf("title = %q, want untouched", got)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		f := newFixture(t, "Task One")
		if code := Run([]string{"edit", "1"}, f.opt); code != 2 {
			t.Errorf("Run(edit 1) = %d, want 2", code)
		}
	})
}

func TestLsCommand(t *testing.T) {
	t.Run("flat listing", func(t *testing.T) {
		f := newFixture(t, "Task One", "Task Two")
		f.st.Toggle("t1")

		if code := Run([]string{"ls"}, f.opt); code != 0 {
			t.Fatalf("Run(ls) = %d, want 0", code)
		}
		got := f.out.String()
		for _, want := range []string{"Todos", "Task One", "Task Two", "[x]", "[ ]", "Total"} {
			if !strings.Contains(got, want) {
				t.Errorf("stdout missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("long titles truncate on runes", func(t *testing.T) {
		long := strings.Repeat("ランチ会", 30)
		f := newFixture(t, long)

		if code := Run([]string{"ls"}, f.opt); code != 0 {
			t.Fatalf("Run(ls) = %d, want 0", code)
		}
		got := f.out.String()
		if !utf8.ValidString(got) {
			t.Errorf("stdout is not valid UTF-8:\n%s", got)
		}
		want := string([]rune(long)[:77]) + "..."
		if !strings.Contains(got, want) {
			t.Errorf("stdout missing %q:\n%s", want, got)
		}
	})

	t.Run("grouped listing", func(t *testing.T) {
		f := newFixture(t, "Task One", "Task Two")
		f.st.Toggle("t1")
		f.opt.Group = true

		if code := Run([]string{"ls"}, f.opt); code != 0 {
			t.Fatalf("Run(ls) = %d, want 0", code)
		}
		got := f.out.String()
		if !strings.Contains(got, "Pending") || !strings.Contains(got, "Done") {
			t.Errorf("stdout missing group headers:\n%s", got)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		f := newFixture(t)

		if code := Run([]string{"ls"}, f.opt); code != 0 {
			t.Fatalf("Run(ls) = %d, want 0", code)
		}
		if !strings.Contains(f.out.String(), "no tasks") {
			t.Errorf("stdout = %q, want no tasks", f.out.String())
		}
	})
}

func TestPersistFailureExits1(t *testing.T) {
	ui.SetTheme("mono")
	kv, err := localstore.Open(t.TempDir(), localstore.WithQuota(10))
	if err != nil {
		t.Fatalf("localstore.Open() error = %v", err)
	}
	st := store.Open(kv, nil)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	opt := Options{Store: st, Out: out, Err: errOut}

	if code := Run([]string{"add", "Way past the quota"}, opt); code != 1 {
		t.Errorf("Run(add) = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "storage error") {
		t.Errorf("stderr = %q, want storage error", errOut.String())
	}
	// The in-memory list still took the add.
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

func TestLsShowsLoadFailure(t *testing.T) {
	ui.SetTheme("mono")
	kv, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.Open() error = %v", err)
	}
	if err := kv.Set(store.DefaultKey, []byte("{broken")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	st := store.Open(kv, nil)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	opt := Options{Store: st, Out: out, Err: errOut}

	if code := Run([]string{"ls"}, opt); code != 0 {
		t.Errorf("Run(ls) = %d, want the page to stay usable", code)
	}
	if !strings.Contains(out.String(), "failed to load todos") {
		t.Errorf("stdout = %q, want the load error line", out.String())
	}
	if !strings.Contains(out.String(), "no tasks") {
		t.Errorf("stdout = %q, want the empty fallback list", out.String())
	}
}
