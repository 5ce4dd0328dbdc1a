package dom

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"l14ui/pkg/mainloop"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualFetcher holds every request until the test completes it.
type manualFetcher struct {
	mu      sync.Mutex
	pending map[string]func(string, error)
	urls    []string
}

func newManualFetcher() *manualFetcher {
	return &manualFetcher{pending: make(map[string]func(string, error))}
}

func (f *manualFetcher) FetchTextAsync(ctx context.Context, url string, done func(string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[url] = done
	f.urls = append(f.urls, url)
}

// complete delivers a result from a separate goroutine, the way a real
// fetch would, and waits for the callback to return.
func (f *manualFetcher) complete(url, text string, err error) {
	f.mu.Lock()
	done := f.pending[url]
	delete(f.pending, url)
	f.mu.Unlock()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		done(text, err)
	}()
	wg.Wait()
}

type recordingExecutor struct {
	ran  []string
	fail map[string]error
}

func (e *recordingExecutor) Execute(name, source string) error {
	if err := e.fail[name]; err != nil {
		return err
	}
	e.ran = append(e.ran, source)
	return nil
}

type recordingRegistry struct {
	calls []string
}

func (r *recordingRegistry) InsertStyle(text string) { r.calls = append(r.calls, "+"+text) }

func (r *recordingRegistry) RemoveStyle(text string) bool {
	r.calls = append(r.calls, "-"+text)
	return true
}

type fixture struct {
	doc    *Document
	fetch  *manualFetcher
	exec   *recordingExecutor
	styles *recordingRegistry
	queue  *mainloop.Queue
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		fetch:  newManualFetcher(),
		exec:   &recordingExecutor{fail: map[string]error{}},
		styles: &recordingRegistry{},
		queue:  mainloop.New(nil),
		logs:   logs,
	}
	f.doc = NewDocument(Options{
		Origin:   "http://localhost:3000/",
		Executor: f.exec,
		Fetcher:  f.fetch,
		Styles:   f.styles,
		Queue:    f.queue,
		Logger:   zap.New(core),
	})
	return f
}

func (f *fixture) warnings() []string {
	var out []string
	for _, e := range f.logs.FilterMessage("unsupported operation").All() {
		out = append(out, e.ContextMap()["op"].(string))
	}
	return out
}

func TestCreateElement(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.doc.CreateElement("video"))
	assert.Equal(t, []string{"createElement"}, f.warnings())

	script := f.doc.CreateElement("script")
	require.NotNil(t, script)
	assert.Equal(t, "script", script.TagName())
	assert.Same(t, f.doc.Head(), script.ParentNode())
	assert.Empty(t, f.doc.Head().ChildNodes())

	style := f.doc.CreateElement("STYLE")
	require.IsType(t, &StyleElement{}, style)
	assert.Same(t, f.doc.Head(), style.ParentNode())
}

func TestQuerySelectorAndTextNodes(t *testing.T) {
	f := newFixture(t)
	assert.Same(t, f.doc.Head(), f.doc.QuerySelector("head"))
	assert.Nil(t, f.doc.QuerySelector("body"))
	assert.Equal(t, []string{"querySelector"}, f.warnings())
	assert.Equal(t, ".a { color: red }", f.doc.CreateTextNode(".a { color: red }"))
}

func TestStyleBuffersUntilAttached(t *testing.T) {
	f := newFixture(t)
	style := f.doc.CreateElement("style").(*StyleElement)

	style.AppendChild("a")
	style.AppendChild("b")
	style.RemoveChild("a")
	style.AppendChild("c")
	style.SetAttribute("media", "screen")
	style.RemoveAttribute("media")

	assert.Empty(t, f.styles.calls)
	assert.False(t, style.Enabled())
	assert.Equal(t, []string{"b", "c"}, style.ChildNodes())

	f.doc.Head().AppendChild(style)
	assert.True(t, style.Enabled())
	if diff := cmp.Diff([]string{"+a", "+b", "-a", "+c"}, f.styles.calls); diff != "" {
		t.Errorf("flush mismatch (-want +got):\n%s", diff)
	}

	style.AppendChild("d")
	style.RemoveChild("b")
	if diff := cmp.Diff([]string{"+a", "+b", "-a", "+c", "+d", "-b"}, f.styles.calls); diff != "" {
		t.Errorf("attached flush mismatch (-want +got):\n%s", diff)
	}
	first, ok := style.FirstChild()
	assert.True(t, ok)
	assert.Equal(t, "c", first)
}

func TestStyleMaterializedSetSurvivorship(t *testing.T) {
	type op struct {
		remove bool
		text   string
	}
	seqs := [][]op{
		{{false, "x"}, {false, "y"}, {false, "x"}, {true, "x"}},
		{{true, "ghost"}, {false, "a"}, {true, "a"}, {false, "a"}},
		{{false, "p"}, {false, "q"}, {false, "r"}, {true, "q"}, {false, "q"}},
	}
	for _, seq := range seqs {
		f := newFixture(t)
		style := f.doc.CreateElement("style").(*StyleElement)
		var want []string
		for _, o := range seq {
			if o.remove {
				style.RemoveChild(o.text)
				for i, w := range want {
					if w == o.text {
						want = append(want[:i], want[i+1:]...)
						break
					}
				}
			} else {
				style.AppendChild(o.text)
				want = append(want, o.text)
			}
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, style.ChildNodes())
	}
}

func TestStyleFlushesOnce(t *testing.T) {
	f := newFixture(t)
	style := f.doc.CreateElement("style").(*StyleElement)
	style.AppendChild("a")
	f.doc.Head().AppendChild(style)
	f.doc.Head().AppendChild(style)

	assert.Equal(t, []string{"+a"}, f.styles.calls)
	assert.Len(t, f.doc.Head().ChildNodes(), 1)
}

func TestStyleRemovalIsRefused(t *testing.T) {
	f := newFixture(t)
	style := f.doc.CreateElement("style").(*StyleElement)
	f.doc.Head().AppendChild(style)

	f.doc.Head().RemoveChild(style)
	assert.True(t, style.Enabled())
	assert.Len(t, f.doc.Head().ChildNodes(), 1)
	assert.Equal(t, []string{"removeChild"}, f.warnings())
}

func TestScriptResolvesAgainstOrigin(t *testing.T) {
	f := newFixture(t)
	rel := f.doc.CreateElement("script").(*ScriptElement)
	rel.Src = "static/js/main.js"
	abs := f.doc.CreateElement("script").(*ScriptElement)
	abs.Src = "https://cdn.example.com/lib.js"

	f.doc.Head().AppendChild(rel)
	f.doc.Head().AppendChild(abs)

	assert.Equal(t, []string{
		"http://localhost:3000/static/js/main.js",
		"https://cdn.example.com/lib.js",
	}, f.fetch.urls)
	assert.Equal(t, ScriptPending, rel.State())
	f.fetch.complete(f.fetch.urls[0], "", nil)
	f.fetch.complete(f.fetch.urls[1], "", nil)
	f.queue.Drain()
}

func TestScriptsRunInCompletionOrder(t *testing.T) {
	f := newFixture(t)
	a := f.doc.CreateElement("script").(*ScriptElement)
	a.Src = "a.js"
	b := f.doc.CreateElement("script").(*ScriptElement)
	b.Src = "b.js"
	f.doc.Head().AppendChild(a)
	f.doc.Head().AppendChild(b)

	f.fetch.complete("http://localhost:3000/b.js", "B", nil)
	f.fetch.complete("http://localhost:3000/a.js", "A", nil)
	assert.Empty(t, f.exec.ran, "nothing runs before the main queue drains")

	assert.Equal(t, 2, f.queue.Drain())
	assert.Equal(t, []string{"B", "A"}, f.exec.ran)
	assert.Equal(t, ScriptExecuted, a.State())
	assert.Equal(t, ScriptExecuted, b.State())
}

func TestScriptFailures(t *testing.T) {
	f := newFixture(t)
	broken := f.doc.CreateElement("script").(*ScriptElement)
	broken.Src = "missing.js"
	bad := f.doc.CreateElement("script").(*ScriptElement)
	bad.Src = "bad.js"
	f.exec.fail["http://localhost:3000/bad.js"] = errors.New("SyntaxError")
	f.doc.Head().AppendChild(broken)
	f.doc.Head().AppendChild(bad)

	f.fetch.complete("http://localhost:3000/missing.js", "", errors.New("HTTP 404"))
	f.fetch.complete("http://localhost:3000/bad.js", "}{", nil)
	f.queue.Drain()

	assert.Empty(t, f.exec.ran)
	assert.Equal(t, ScriptFailed, broken.State())
	assert.Equal(t, ScriptFailed, bad.State())
	assert.Equal(t, 1, f.logs.FilterMessage("script fetch failed").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("script execution failed").Len())
}

func TestRemovePendingScriptIsRefused(t *testing.T) {
	f := newFixture(t)
	s := f.doc.CreateElement("script").(*ScriptElement)
	s.Src = "slow.js"
	f.doc.Head().AppendChild(s)

	f.doc.Head().RemoveChild(s)
	assert.Equal(t, []string{"removeChild"}, f.warnings())
	assert.Len(t, f.doc.Head().ChildNodes(), 1)

	f.fetch.complete("http://localhost:3000/slow.js", "slow", nil)
	f.queue.Drain()
	assert.Equal(t, []string{"slow"}, f.exec.ran)

	f.doc.Head().RemoveChild(s)
	assert.Empty(t, f.doc.Head().ChildNodes())
	assert.Len(t, f.warnings(), 1)
}

func TestClosedDocumentDropsCompletions(t *testing.T) {
	f := newFixture(t)
	s := f.doc.CreateElement("script").(*ScriptElement)
	s.Src = "late.js"
	f.doc.Head().AppendChild(s)

	f.fetch.complete("http://localhost:3000/late.js", "late", nil)
	f.doc.Close()
	f.queue.Drain()

	assert.True(t, f.doc.Closed())
	assert.Empty(t, f.exec.ran)
	assert.Equal(t, ScriptPending, s.State())
}

func TestScriptWithoutFetcher(t *testing.T) {
	doc := NewDocument(Options{})
	s := doc.CreateElement("script").(*ScriptElement)
	doc.Head().AppendChild(s)
	assert.Equal(t, ScriptFailed, s.State())
}
