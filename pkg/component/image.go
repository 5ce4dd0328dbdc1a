package component

import (
	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// Image shows an image resource by URL or path.
type Image struct {
	*Base
	source string
}

func newImage(ctx *Context) (*Image, error) {
	i := &Image{}
	b, err := newBase(ctx, native.KindImage, i, style.Defaults{}, layout.NewNode())
	if err != nil {
		return nil, err
	}
	i.Base = b
	return i, nil
}

// Source returns the image resource last set.
func (i *Image) Source() string { return i.source }

func (i *Image) SetProperty(name string, v Value) error {
	if name == "source" || name == "src" {
		i.source = v.String()
		i.widget.(native.ImageWidget).SetSource(i.source)
		return nil
	}
	return i.Base.SetProperty(name, v)
}
