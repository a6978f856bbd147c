// Copyright 2026 The dynet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dynet

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// DefaultSeed is the RNG seed used when a Collection is created without
// WithSeed. A fixed default keeps ad-hoc runs repeatable.
const DefaultSeed int64 = 42

// Collection owns the trainable parameter tensors of a model.
//
// Parameters registered on a Collection persist across graphs: the same
// storage is wrapped by every Graph built from the collection, so updates
// applied while training through one graph are visible to the next.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	rng    *rand.Rand
	params []*Parameter
	byName map[string]*Parameter
}

// CollectionOption configures a Collection at construction time.
type CollectionOption func(*Collection)

// WithSeed seeds the RNG used to initialize parameter values. Two
// collections built with the same seed and the same sequence of
// AddParameters calls hold identical values.
func WithSeed(seed int64) CollectionOption {
	return func(c *Collection) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// NewCollection creates an empty parameter collection.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{
		rng:    rand.New(rand.NewSource(DefaultSeed)),
		byName: make(map[string]*Parameter),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddParameters registers a named parameter tensor with the given shape
// and returns it.
//
// One dimension declares a vector, two declare a matrix. Values are drawn
// from the Glorot uniform distribution using the collection's RNG.
//
// Parameters:
//   - name: Unique name within the collection (e.g. "W", "hidden/bias").
//   - dims: Tensor shape, one or two positive dimensions.
//
// Returns an error for an empty or duplicate name, or an invalid shape.
func (c *Collection) AddParameters(name string, dims ...int) (*Parameter, error) {
	if name == "" {
		return nil, errors.New("dynet: parameter name must not be empty")
	}
	if _, ok := c.byName[name]; ok {
		return nil, errors.Errorf("dynet: parameter %q already registered", name)
	}
	if len(dims) < 1 || len(dims) > 2 {
		return nil, errors.Errorf("dynet: parameter %q: want 1 or 2 dimensions, got %d", name, len(dims))
	}
	size := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, errors.Errorf("dynet: parameter %q: dimension %d is not positive", name, d)
		}
		size *= d
	}

	// Glorot uniform: U(-limit, limit) with limit = sqrt(6 / (fanIn + fanOut)).
	fanIn := dims[0]
	fanOut := 1
	if len(dims) == 2 {
		fanIn, fanOut = dims[1], dims[0]
	}
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))

	backing := make([]float64, size)
	for i := range backing {
		backing[i] = (c.rng.Float64()*2 - 1) * limit
	}

	p := &Parameter{
		name:  name,
		dims:  append([]int(nil), dims...),
		value: tensor.New(tensor.WithShape(dims...), tensor.WithBacking(backing)),
	}
	c.params = append(c.params, p)
	c.byName[name] = p
	return p, nil
}

// Parameters returns the registered parameters in registration order.
func (c *Collection) Parameters() []*Parameter {
	return append([]*Parameter(nil), c.params...)
}

// Parameter is a named trainable tensor owned by a Collection.
//
// The backing storage is shared with every graph node created from the
// parameter, which is how optimizer updates persist beyond the lifetime
// of a single graph.
type Parameter struct {
	name  string
	dims  []int
	value *tensor.Dense
}

// Name returns the parameter's registered name.
func (p *Parameter) Name() string { return p.name }

// Dims returns the parameter's shape.
func (p *Parameter) Dims() []int {
	return append([]int(nil), p.dims...)
}

// Value returns the parameter's backing tensor.
func (p *Parameter) Value() *tensor.Dense { return p.value }

// SetValue overwrites the parameter's values in row-major order.
//
// The number of values must match the parameter's size exactly. Intended
// for loading known weights and for tests; fresh parameters are already
// initialized by AddParameters.
func (p *Parameter) SetValue(vals ...float64) error {
	backing, ok := p.value.Data().([]float64)
	if !ok {
		return errors.Errorf("dynet: parameter %q: unexpected backing type %T", p.name, p.value.Data())
	}
	if len(vals) != len(backing) {
		return errors.Errorf("dynet: parameter %q: want %d values, got %d", p.name, len(backing), len(vals))
	}
	copy(backing, vals)
	return nil
}
