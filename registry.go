package rast3d

import (
	"fmt"
	"sort"
	"sync"
)

// ShaderFactory creates a new Shader instance.
type ShaderFactory func() Shader

// ShaderRegistry maps shader names to factories.
//
// The application builds a registry before loading scenes and hands it to
// the scene loader. There is no global registry.
//
//	reg := rast3d.DefaultShaderRegistry()
//	_ = reg.Register("toon", func() rast3d.Shader { return &ToonShader{} })
//	s, err := reg.Create("toon")
type ShaderRegistry struct {
	mu        sync.RWMutex
	factories map[string]ShaderFactory
}

// NewShaderRegistry creates an empty registry.
func NewShaderRegistry() *ShaderRegistry {
	return &ShaderRegistry{factories: make(map[string]ShaderFactory)}
}

// DefaultShaderRegistry creates a registry holding the built-in shaders.
func DefaultShaderRegistry() *ShaderRegistry {
	r := NewShaderRegistry()
	r.factories[UnlitShaderName] = func() Shader { return UnlitShader{} }
	r.factories[BlinnPhongShaderName] = func() Shader { return BlinnPhongShader{} }
	r.factories[NormalMapShaderName] = func() Shader { return NormalMapShader{} }
	r.factories[ShadowDepthShaderName] = func() Shader { return ShadowDepthShader{} }
	return r
}

// Register adds a factory under name.
// Registering a name twice returns ErrDuplicateShader.
func (r *ShaderRegistry) Register(name string, factory ShaderFactory) error {
	if factory == nil {
		return fmt.Errorf("register %q: %w", name, ErrNilShaderFactory)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		r.factories = make(map[string]ShaderFactory)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateShader)
	}
	r.factories[name] = factory
	return nil
}

// Create returns a new shader built by the factory registered under name.
func (r *ShaderRegistry) Create(name string) (Shader, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	return factory(), nil
}

// Names returns the registered names in sorted order.
func (r *ShaderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
