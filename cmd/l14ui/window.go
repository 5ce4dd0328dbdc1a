package main

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"l14ui/pkg/config"
	"l14ui/pkg/host"
	"l14ui/pkg/native/fyneui"
)

// runWindow shows the root in a fyne window. Cycles run on fyne's main
// goroutine through fyne.Do, so script, events and layout share it.
func runWindow(ctx context.Context, cfg *config.Config, script string, logger *zap.Logger) error {
	a := app.New()
	w := a.NewWindow("l14ui")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)))

	h, err := host.New(host.Options{Config: cfg, Toolkit: fyneui.New(logger), Logger: logger})
	if err != nil {
		return err
	}
	content, ok := fyneui.CanvasObject(h.Root().Widget())
	if !ok {
		h.Close()
		return errors.New("root widget is not a fyne object")
	}
	w.SetContent(content)

	if err := h.RunURI(ctx, script); err != nil {
		h.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.SetOnClosed(cancel)
	go func() {
		ticker := time.NewTicker(cfg.Runtime.FrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				fyne.Do(a.Quit)
				return
			case <-ticker.C:
			case <-h.Queue().Wake():
			}
			fyne.Do(func() {
				size := w.Canvas().Size()
				h.Resize(float64(size.Width), float64(size.Height))
				h.Cycle()
				if limit := cfg.Runtime.MaxCycles; limit > 0 && h.Cycles() >= limit {
					cancel()
				}
			})
		}
	}()

	w.ShowAndRun()
	cancel()
	h.Close()
	logger.Info("window closed", zap.Int("cycles", h.Cycles()))
	return nil
}
