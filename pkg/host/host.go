// Package host owns one UI root: the component tree, its document, the
// script runtime and the main queue that ties them together.
package host

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"l14ui/pkg/component"
	"l14ui/pkg/config"
	"l14ui/pkg/dom"
	"l14ui/pkg/js"
	"l14ui/pkg/mainloop"
	"l14ui/pkg/native"
	"l14ui/pkg/native/headless"
	"l14ui/pkg/resource"
	"l14ui/pkg/stylesheet"
	stdnet "l14ui/std/net"
)

// ErrClosed is returned by operations on a closed host.
var ErrClosed = errors.New("host: closed")

// Fetcher loads resources for the document and the entry script.
type Fetcher interface {
	resource.Fetcher
	dom.Fetcher
	FetchText(ctx context.Context, uri string) (string, error)
	Wait()
}

// Options configures a Host. Zero fields get defaults: headless toolkit,
// an HTTP/file fetcher rooted at the configured origin, and a no-op logger.
type Options struct {
	Config  *config.Config
	Toolkit native.Toolkit
	Fetcher Fetcher
	Logger  *zap.Logger
}

// Host is the UI root. All methods except Queue().Post must be called from
// the goroutine that owns the tree.
type Host struct {
	cfg     *config.Config
	comp    *component.Context
	root    component.Node
	styles  *stylesheet.Registry
	queue   *mainloop.Queue
	fetcher Fetcher
	doc     *dom.Document
	engine  *js.Engine
	logger  *zap.Logger

	width, height float64
	cycles        int
	closed        bool
}

func New(opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	toolkit := opts.Toolkit
	if toolkit == nil {
		toolkit = headless.New()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		client := stdnet.NewClient(cfg.Network.Timeout, cfg.Network.UserAgent)
		fetcher = resource.NewFetcher(cfg.Runtime.Origin, client, cfg.Network.Timeout, logger)
	}

	h := &Host{
		cfg:     cfg,
		comp:    component.NewContext(toolkit, logger),
		styles:  stylesheet.NewRegistry(logger),
		queue:   mainloop.New(logger),
		fetcher: fetcher,
		engine:  js.New(logger),
		logger:  logger.Named("host"),
		width:   cfg.Viewport.Width,
		height:  cfg.Viewport.Height,
	}
	root, err := component.New(h.comp, native.KindView)
	if err != nil {
		return nil, fmt.Errorf("host: create root: %w", err)
	}
	h.root = root
	h.doc = dom.NewDocument(dom.Options{
		Origin:   cfg.Runtime.Origin,
		Executor: h.engine,
		Fetcher:  fetcher,
		Styles:   h.styles,
		Queue:    h.queue,
		Logger:   logger,
	})
	h.engine.BindDocument(h.doc)
	h.engine.BindUI(h.comp, root)
	return h, nil
}

func (h *Host) Root() component.Node { return h.root }
func (h *Host) Document() *dom.Document { return h.doc }
func (h *Host) Styles() *stylesheet.Registry { return h.styles }
func (h *Host) Queue() *mainloop.Queue { return h.queue }
func (h *Host) Engine() *js.Engine { return h.engine }
func (h *Host) Context() *component.Context { return h.comp }
func (h *Host) Fetcher() Fetcher { return h.fetcher }
func (h *Host) Cycles() int { return h.cycles }
func (h *Host) Viewport() (width, height float64) { return h.width, h.height }

// Resize changes the viewport used by subsequent cycles.
func (h *Host) Resize(width, height float64) {
	h.width, h.height = width, height
}

// Run executes the entry script. Script errors are returned; the tree built
// before the error stays in place.
func (h *Host) Run(name, source string) error {
	if h.closed {
		return ErrClosed
	}
	h.logger.Info("running script", zap.String("name", name), zap.Int("bytes", len(source)))
	if err := h.engine.Execute(name, source); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	return nil
}

// RunURI fetches the entry script from a URL or path and runs it. Plain
// paths are local files relative to the working directory, never to the
// script origin.
func (h *Host) RunURI(ctx context.Context, uri string) error {
	if h.closed {
		return ErrClosed
	}
	target, err := entryURL(uri)
	if err != nil {
		return fmt.Errorf("host: load %s: %w", uri, err)
	}
	src, err := h.fetcher.FetchText(ctx, target)
	if err != nil {
		return fmt.Errorf("host: load %s: %w", uri, err)
	}
	return h.Run(uri, src)
}

func entryURL(uri string) (string, error) {
	if stdnet.IsNetworkURL(uri) || stdnet.IsFileURL(uri) {
		return uri, nil
	}
	abs, err := filepath.Abs(uri)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// Cycle runs one main-loop iteration: queued tasks, style resolution from
// the root, style application and layout for the viewport. It returns how
// many queued tasks ran.
func (h *Host) Cycle() int {
	if h.closed {
		return 0
	}
	n := h.queue.Drain()
	h.root.ResolveStyle(true)
	component.Walk(h.root, func(c component.Node) { c.ApplyStyles() })
	component.Layout(h.comp, h.root, h.width, h.height)
	h.cycles++
	if n > 0 {
		h.logger.Debug("cycle", zap.Int("cycle", h.cycles), zap.Int("tasks", n))
	}
	return n
}

// Loop cycles once per frame interval, and early whenever a task is posted,
// until ctx is done or the configured number of cycles has run in this call.
// A zero limit means run until ctx is done.
func (h *Host) Loop(ctx context.Context) error {
	ticker := time.NewTicker(h.cfg.Runtime.FrameInterval)
	defer ticker.Stop()
	limit := h.cfg.Runtime.MaxCycles
	start := h.cycles
	for {
		if h.closed {
			return ErrClosed
		}
		h.Cycle()
		if limit > 0 && h.cycles-start >= limit {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-h.queue.Wake():
		}
	}
}

// Settle cycles until no fetch is outstanding and the queue is empty, so
// every script appended so far has run. Useful for one-shot rendering.
func (h *Host) Settle() {
	for !h.closed {
		h.fetcher.Wait()
		if h.Cycle() == 0 && h.queue.Len() == 0 {
			return
		}
	}
}

// Close tears the root down: the queue stops accepting work, the document
// cancels outstanding fetches, and the component tree is destroyed.
// Completions that arrive afterwards are dropped.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	dropped := h.queue.Close()
	h.doc.Close()
	h.fetcher.Wait()
	h.root.Remove()
	h.engine.Release()
	h.logger.Info("closed", zap.Int("cycles", h.cycles), zap.Int("dropped", dropped))
}
