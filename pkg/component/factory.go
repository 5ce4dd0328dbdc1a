package component

import (
	"fmt"

	"l14ui/pkg/native"
)

// New creates a detached node of the given kind.
func New(ctx *Context, kind native.Kind) (Node, error) {
	var (
		n   Node
		err error
	)
	switch kind {
	case native.KindView:
		n, err = newView(ctx)
	case native.KindText, native.KindButton:
		n, err = newText(ctx, kind)
	case native.KindImage:
		n, err = newImage(ctx)
	case native.KindInput:
		n, err = newInput(ctx)
	default:
		return nil, fmt.Errorf("component: unknown kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("component: create %s: %w", kind, err)
	}
	n.base().logger.Debug("created")
	return n, nil
}

// Layout computes geometry for the tree under root within the given viewport
// and pushes the result into every widget.
func Layout(ctx *Context, root Node, width, height float64) {
	ctx.Layout.Calculate(root.base().box, width, height)
	Walk(root, func(n Node) { n.ApplyGeometry() })
}
