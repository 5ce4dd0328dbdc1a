package component

import (
	"go.uber.org/zap"

	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
	"l14ui/pkg/text"
)

// Context carries the collaborators every component needs. One is created per
// UI root and handed to each component at construction; there is no global.
type Context struct {
	Toolkit  native.Toolkit
	Layout   *layout.Engine
	Resolver *style.Resolver
	Measurer *text.Measurer
	Logger   *zap.Logger
}

// NewContext fills in defaults for everything except the toolkit.
func NewContext(toolkit native.Toolkit, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		Toolkit:  toolkit,
		Layout:   layout.NewEngine(),
		Resolver: style.NewResolver(style.Standard),
		Measurer: text.NewMeasurer(""),
		Logger:   logger.Named("component"),
	}
}
