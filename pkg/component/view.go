package component

import (
	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// View is a plain flex container.
type View struct {
	*Base
}

func newView(ctx *Context) (*View, error) {
	v := &View{}
	b, err := newBase(ctx, native.KindView, v, style.Defaults{}, layout.NewNode())
	if err != nil {
		return nil, err
	}
	v.Base = b
	return v, nil
}
