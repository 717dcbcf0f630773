package browser

import (
	"maps"
	"slices"

	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/logging"
	"github.com/dshills/propbrowser/internal/property"
)

// Registry records which editor factory each browser uses for each manager.
//
// A browser has at most one factory per manager. A factory is told about a
// manager when the first browser binds the pair and released when the last
// one unbinds it.
type Registry struct {
	viewerToManagerToFactory  map[*Browser]map[property.Manager]editor.Factory
	managerToFactoryToViewers map[property.Manager]map[editor.Factory][]*Browser
	logger                    *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Null()
	}
	return &Registry{
		viewerToManagerToFactory:  make(map[*Browser]map[property.Manager]editor.Factory),
		managerToFactoryToViewers: make(map[property.Manager]map[editor.Factory][]*Browser),
		logger:                    logger.WithComponent("registry"),
	}
}

// SetFactoryForManager binds f as v's factory for m, replacing any previous
// binding for the pair (v, m).
func (r *Registry) SetFactoryForManager(v *Browser, m property.Manager, f editor.Factory) {
	if v == nil || m == nil || f == nil {
		return
	}
	if current, ok := r.viewerToManagerToFactory[v][m]; ok {
		if current == f {
			return
		}
		r.UnsetFactoryForManager(v, m)
	}

	byManager := r.viewerToManagerToFactory[v]
	if byManager == nil {
		byManager = make(map[property.Manager]editor.Factory)
		r.viewerToManagerToFactory[v] = byManager
	}
	byManager[m] = f

	byFactory := r.managerToFactoryToViewers[m]
	if byFactory == nil {
		byFactory = make(map[editor.Factory][]*Browser)
		r.managerToFactoryToViewers[m] = byFactory
	}
	first := len(byFactory[f]) == 0
	byFactory[f] = append(byFactory[f], v)

	if first {
		r.logger.Debug("factory %T serves manager %T", f, m)
		f.AddPropertyManager(m)
	}
}

// UnsetFactoryForManager removes v's binding for m. The factory stops
// serving m once no browser binds it any more.
func (r *Registry) UnsetFactoryForManager(v *Browser, m property.Manager) {
	f, ok := r.viewerToManagerToFactory[v][m]
	if !ok {
		return
	}
	delete(r.viewerToManagerToFactory[v], m)
	if len(r.viewerToManagerToFactory[v]) == 0 {
		delete(r.viewerToManagerToFactory, v)
	}

	viewers := r.managerToFactoryToViewers[m][f]
	if i := slices.Index(viewers, v); i >= 0 {
		viewers = slices.Delete(viewers, i, i+1)
	}
	if len(viewers) > 0 {
		r.managerToFactoryToViewers[m][f] = viewers
		return
	}

	delete(r.managerToFactoryToViewers[m], f)
	if len(r.managerToFactoryToViewers[m]) == 0 {
		delete(r.managerToFactoryToViewers, m)
	}
	r.logger.Debug("factory %T released manager %T", f, m)
	f.RemovePropertyManager(m)
}

// FactoryFor returns v's factory for m, or nil.
func (r *Registry) FactoryFor(v *Browser, m property.Manager) editor.Factory {
	return r.viewerToManagerToFactory[v][m]
}

// Viewers returns the browsers that bind f to m.
func (r *Registry) Viewers(m property.Manager, f editor.Factory) []*Browser {
	return slices.Clone(r.managerToFactoryToViewers[m][f])
}

// RemoveViewer drops every binding held by v.
func (r *Registry) RemoveViewer(v *Browser) {
	for _, m := range slices.Collect(maps.Keys(r.viewerToManagerToFactory[v])) {
		r.UnsetFactoryForManager(v, m)
	}
}
