package style

// Resolver computes effective styles.
//
// For each registered property the effective value is, in order: the value set
// explicitly on the node; the parent's effective value when the property is
// inheritable and the parent's value was itself declared somewhere up the
// chain; the kind default; the registry default. Kind defaults count as
// declarations for the node's descendants. Because the parent's effective map
// already carries whatever it inherited, reading only the parent yields the
// nearest ancestor that defines the property. Callers must resolve ancestors
// before descendants.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = Standard
	}
	return &Resolver{registry: registry}
}

// Registry returns the property set this resolver cascades.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve recomputes n's effective values. parent may be nil for a root.
func (r *Resolver) Resolve(n *Node, parent *Node, defaults Defaults) {
	effective := make(map[string]string, len(r.registry.props))
	specified := make(map[string]bool, len(r.registry.props))
	for _, p := range r.registry.props {
		if v, ok := n.explicit[p.Name]; ok {
			effective[p.Name], specified[p.Name] = v, true
			continue
		}
		if p.Inherited && parent != nil && parent.specified[p.Name] {
			effective[p.Name], specified[p.Name] = parent.effective[p.Name], true
			continue
		}
		if v, ok := defaults[p.Name]; ok {
			effective[p.Name], specified[p.Name] = v, true
			continue
		}
		if p.Default != "" {
			effective[p.Name] = p.Default
		}
	}
	// Unregistered declarations apply to the node only.
	for k, v := range n.explicit {
		if _, known := r.registry.index[k]; !known {
			effective[k] = v
		}
	}
	n.effective = effective
	n.specified = specified
}

// Derive overwrites an effective value after resolution. It is how one node's
// style is computed from another's; the next Resolve discards it.
func (n *Node) Derive(property, value string) {
	n.effective[property] = value
}
