package router

import (
	"io"

	"gopkg.in/yaml.v3"
)

// RouteInfo is the serializable description of one registered layer.
type RouteInfo struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Path    string   `json:"path" yaml:"path"`
	Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`
	Params  []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// RouteTable describes the registered routes in registration order.
// Layers built from a precompiled matcher report their regexp source as
// the path.
func (r *Router) RouteTable() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.layers))
	for _, l := range r.layers {
		info := RouteInfo{
			Name:    l.Name(),
			Path:    l.Path(),
			Methods: l.Methods(),
		}
		if info.Path == "" && l.tpl != nil && l.tpl.Regexp() != nil {
			info.Path = l.tpl.Regexp().String()
		}
		for _, p := range l.ParamNames() {
			info.Params = append(info.Params, p.Name)
		}
		infos = append(infos, info)
	}
	return infos
}

// DumpYAML writes the route table to w as YAML. Intended for diagnostics
// and route inventory tooling.
func (r *Router) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(r.RouteTable()); err != nil {
		return err
	}
	return enc.Close()
}
