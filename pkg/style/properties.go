package style

// Property describes one visual style property.
type Property struct {
	Name string
	// Inherited properties take the nearest ancestor's effective value
	// when they are not set on the node itself.
	Inherited bool
	// Default is used when nothing else applies. Empty means "no value".
	Default string
}

// Registry is the set of properties the cascade knows about, in resolution order.
type Registry struct {
	props []Property
	index map[string]int
}

// NewRegistry builds a registry from the given properties.
// Later duplicates replace earlier ones.
func NewRegistry(props ...Property) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, p := range props {
		if i, ok := r.index[p.Name]; ok {
			r.props[i] = p
			continue
		}
		r.index[p.Name] = len(r.props)
		r.props = append(r.props, p)
	}
	return r
}

// Lookup returns the property definition for name.
func (r *Registry) Lookup(name string) (Property, bool) {
	i, ok := r.index[name]
	if !ok {
		return Property{}, false
	}
	return r.props[i], true
}

// IsInherited reports whether name is an inheritable property.
// Unknown properties never inherit.
func (r *Registry) IsInherited(name string) bool {
	p, ok := r.Lookup(name)
	return ok && p.Inherited
}

// Properties returns the registered properties in resolution order.
func (r *Registry) Properties() []Property {
	return r.props
}

// Standard property names.
const (
	PropColor           = "color"
	PropFontSize        = "font-size"
	PropFontFamily      = "font-family"
	PropFontWeight      = "font-weight"
	PropFontStyle       = "font-style"
	PropTextAlign       = "text-align"
	PropLineHeight      = "line-height"
	PropVisibility      = "visibility"
	PropCursor          = "cursor"
	PropBackgroundColor = "background-color"
	PropBorderColor     = "border-color"
	PropBorderWidth     = "border-width"
	PropBorderRadius    = "border-radius"
	PropOpacity         = "opacity"
)

// Standard is the property set used by components.
var Standard = NewRegistry(
	Property{Name: PropColor, Inherited: true, Default: "black"},
	Property{Name: PropFontSize, Inherited: true, Default: "16"},
	Property{Name: PropFontFamily, Inherited: true, Default: "sans-serif"},
	Property{Name: PropFontWeight, Inherited: true, Default: "normal"},
	Property{Name: PropFontStyle, Inherited: true, Default: "normal"},
	Property{Name: PropTextAlign, Inherited: true, Default: "left"},
	Property{Name: PropLineHeight, Inherited: true},
	Property{Name: PropVisibility, Inherited: true, Default: "visible"},
	Property{Name: PropCursor, Inherited: true, Default: "default"},
	Property{Name: PropBackgroundColor, Default: "transparent"},
	Property{Name: PropBorderColor, Default: "black"},
	Property{Name: PropBorderWidth, Default: "0"},
	Property{Name: PropBorderRadius, Default: "0"},
	Property{Name: PropOpacity, Default: "1"},
)

// Defaults are per-component-kind overrides of registry defaults.
type Defaults map[string]string
