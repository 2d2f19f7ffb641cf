package node

import "github.com/CraigKelly/mcmcbugs/value"

// Param unifies a distribution hyperparameter that may either be a literal
// (Static) or a reference to another node's current value (Dynamic),
// resolved fresh on every LogLik call so a Dynamic parameter tracks its
// source node as it is sampled.
type Param struct {
	static bool
	lit    value.Value
	src    Node
}

// StaticParam wraps a literal value as a fixed hyperparameter.
func StaticParam(v value.Value) Param {
	return Param{static: true, lit: v}
}

// DynamicParam wraps another node's current value as a hyperparameter that
// tracks that node across the chain.
func DynamicParam(n Node) Param {
	return Param{src: n}
}

// Resolve returns the parameter's current value.
func (p Param) Resolve() value.Value {
	if p.static {
		return p.lit
	}
	return p.src.Value()
}

// Source returns the backing node for a Dynamic parameter, or nil for a
// Static one. Used by the model to record a parameter dependency edge.
func (p Param) Source() Node {
	if p.static {
		return nil
	}
	return p.src
}
