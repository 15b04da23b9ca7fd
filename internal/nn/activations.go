package nn

import (
	"errors"
	"fmt"
	"math"
)

var ErrActivationNotFound = errors.New("activation not found")

// Activation selects the transfer function applied to a layer's neurons.
type Activation string

const (
	Sigmoid     Activation = "sigmoid"
	FastSigmoid Activation = "fast_sigmoid"
	ReLU        Activation = "relu"
)

type ActivationFunc func(x float64) float64

// Func resolves the selector to its transfer function.
func (a Activation) Func() (ActivationFunc, error) {
	switch a {
	case Sigmoid:
		return sigmoid, nil
	case FastSigmoid:
		return fastSigmoid, nil
	case ReLU:
		return relu, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrActivationNotFound, string(a))
	}
}

// ParseActivation validates a selector read from configuration.
func ParseActivation(name string) (Activation, error) {
	a := Activation(name)
	if _, err := a.Func(); err != nil {
		return "", err
	}
	return a, nil
}

// Activations lists the supported selectors.
func Activations() []Activation {
	return []Activation{Sigmoid, FastSigmoid, ReLU}
}

// sigmoid saturates outside [-45, 45] to keep the exponential from
// overflowing.
func sigmoid(x float64) float64 {
	if x < -45 {
		return 0
	}
	if x > 45 {
		return 1
	}
	return 1.0 / (1.0 + math.Exp(-x))
}

func fastSigmoid(x float64) float64 {
	return x / (1 + math.Abs(x))
}

func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
