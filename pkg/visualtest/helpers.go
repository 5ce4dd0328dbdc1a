package visualtest

import (
	"context"
	"image"

	"go.uber.org/zap"

	"l14ui/pkg/config"
	"l14ui/pkg/host"
	"l14ui/pkg/images"
	"l14ui/pkg/render"
)

// RenderScript runs source in a fresh headless host with the given viewport,
// settles it and rasterises the result.
func RenderScript(source string, width, height int, logger *zap.Logger) (image.Image, error) {
	cfg := config.NewDefaultConfig()
	cfg.Viewport.Width = float64(width)
	cfg.Viewport.Height = float64(height)
	h, err := host.New(host.Options{Config: cfg, Logger: logger})
	if err != nil {
		return nil, err
	}
	defer h.Close()

	if err := h.Run("visual.js", source); err != nil {
		return nil, err
	}
	h.Settle()

	r := render.NewRenderer(width, height, h.Context().Measurer, images.NewLoader(h.Fetcher(), logger), logger)
	r.Render(context.Background(), h.Root().Widget())
	return r.Image(), nil
}
