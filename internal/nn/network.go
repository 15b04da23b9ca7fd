package nn

import (
	"fmt"
	"math/rand"
)

// DefaultBias is the bias input fed to every neuron's bias weight unless
// overridden with SetBias.
const DefaultBias = -1.0

// WeightCount returns the number of weights a fully connected topology
// carries, one bias weight per neuron included.
func WeightCount(inputs, hiddens, outputs, hiddenLayers int) int {
	if hiddenLayers == 0 {
		return (inputs + 1) * outputs
	}
	inputWeights := (inputs + 1) * hiddens
	internalWeights := (hiddenLayers - 1) * (hiddens + 1) * hiddens
	outputWeights := (hiddens + 1) * outputs
	return inputWeights + internalWeights + outputWeights
}

// NeuronCount returns the number of scratch slots an evaluation writes: the
// input echo plus every hidden and output activation.
func NeuronCount(inputs, hiddens, outputs, hiddenLayers int) int {
	return inputs + hiddens*hiddenLayers + outputs
}

// Network is a fixed-topology, fully connected, biased feed-forward network.
// Weights and scratch activations live in one backing block so that repeated
// evaluation allocates nothing.
type Network struct {
	inputs       int
	hiddens      int
	outputs      int
	hiddenLayers int

	bias             float64
	hiddenActivation Activation
	outputActivation Activation
	hiddenFn         ActivationFunc
	outputFn         ActivationFunc

	// weights and scratch are index views into the same backing block.
	block   []float64
	weights []float64
	scratch []float64
}

// New allocates a zero-weight network. Hidden count and hidden layer count
// must both be zero or both be positive. Both layers default to the
// saturating sigmoid and the bias input defaults to DefaultBias.
func New(inputs, hiddens, outputs, hiddenLayers int) (*Network, error) {
	if inputs <= 0 {
		return nil, fmt.Errorf("input count must be > 0, got %d", inputs)
	}
	if outputs <= 0 {
		return nil, fmt.Errorf("output count must be > 0, got %d", outputs)
	}
	if hiddens < 0 || hiddenLayers < 0 {
		return nil, fmt.Errorf("hidden count and hidden layer count must be >= 0, got %d and %d", hiddens, hiddenLayers)
	}
	if (hiddens > 0) != (hiddenLayers > 0) {
		return nil, fmt.Errorf("hidden count and hidden layer count must both be zero or both be positive, got %d and %d", hiddens, hiddenLayers)
	}

	nWeights := WeightCount(inputs, hiddens, outputs, hiddenLayers)
	nNeurons := NeuronCount(inputs, hiddens, outputs, hiddenLayers)
	block := make([]float64, nWeights+nNeurons)

	return &Network{
		inputs:           inputs,
		hiddens:          hiddens,
		outputs:          outputs,
		hiddenLayers:     hiddenLayers,
		bias:             DefaultBias,
		hiddenActivation: Sigmoid,
		outputActivation: Sigmoid,
		hiddenFn:         sigmoid,
		outputFn:         sigmoid,
		block:            block,
		weights:          block[:nWeights:nWeights],
		scratch:          block[nWeights:],
	}, nil
}

// Copy duplicates the whole network, current scratch contents included. The
// copy shares no memory with the original.
func (n *Network) Copy() *Network {
	dup := *n
	dup.block = make([]float64, len(n.block))
	copy(dup.block, n.block)
	dup.weights = dup.block[:len(n.weights):len(n.weights)]
	dup.scratch = dup.block[len(n.weights):]
	return &dup
}

// Randomize fills every weight with a uniform value in [-0.5, 0.5).
func (n *Network) Randomize(rng *rand.Rand) {
	for i := range n.weights {
		n.weights[i] = rng.Float64() - 0.5
	}
}

// SetActivations selects the transfer functions for the hidden and output
// layers. An unknown selector leaves the network unchanged.
func (n *Network) SetActivations(hidden, output Activation) error {
	hiddenFn, err := hidden.Func()
	if err != nil {
		return err
	}
	outputFn, err := output.Func()
	if err != nil {
		return err
	}
	n.hiddenActivation = hidden
	n.hiddenFn = hiddenFn
	n.outputActivation = output
	n.outputFn = outputFn
	return nil
}

// SetBias replaces the bias input value.
func (n *Network) SetBias(bias float64) {
	n.bias = bias
}

func (n *Network) Inputs() int       { return n.inputs }
func (n *Network) Hiddens() int      { return n.hiddens }
func (n *Network) Outputs() int      { return n.outputs }
func (n *Network) HiddenLayers() int { return n.hiddenLayers }
func (n *Network) Bias() float64     { return n.bias }

func (n *Network) HiddenActivation() Activation { return n.hiddenActivation }
func (n *Network) OutputActivation() Activation { return n.outputActivation }

// Weights exposes the live weight buffer. Mutations through the returned
// slice affect this instance only.
func (n *Network) Weights() []float64 { return n.weights }

// WeightCount returns the length of the weight buffer.
func (n *Network) WeightCount() int { return len(n.weights) }

// NeuronCount returns the length of the scratch buffer.
func (n *Network) NeuronCount() int { return len(n.scratch) }

// Run evaluates the network on inputs. The inputs are echoed into the head
// of the scratch buffer so every layer reads its predecessor the same way.
// The returned slice aliases scratch memory and is valid only until the
// next Run on this instance.
func (n *Network) Run(inputs []float64) ([]float64, error) {
	if len(inputs) != n.inputs {
		return nil, fmt.Errorf("input length mismatch: got %d, want %d", len(inputs), n.inputs)
	}
	copy(n.scratch[:n.inputs], inputs)

	wi := 0        // next weight to consume
	si := n.inputs // next scratch slot to write
	prev := 0      // start of the previous layer's activations
	prevLen := n.inputs

	for layer := 0; layer < n.hiddenLayers; layer++ {
		layerStart := si
		for j := 0; j < n.hiddens; j++ {
			sum := n.weights[wi] * n.bias
			wi++
			for k := 0; k < prevLen; k++ {
				sum += n.weights[wi] * n.scratch[prev+k]
				wi++
			}
			n.scratch[si] = n.hiddenFn(sum)
			si++
		}
		prev = layerStart
		prevLen = n.hiddens
	}

	outStart := si
	for i := 0; i < n.outputs; i++ {
		sum := n.weights[wi] * n.bias
		wi++
		for k := 0; k < prevLen; k++ {
			sum += n.weights[wi] * n.scratch[prev+k]
			wi++
		}
		n.scratch[si] = n.outputFn(sum)
		si++
	}

	return n.scratch[outStart:si], nil
}
