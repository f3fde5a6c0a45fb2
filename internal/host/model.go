package host

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModel is returned by ParseModel for unrecognized names.
var ErrUnknownModel = errors.New("host: unknown model")

// Model selects one of the reverb topologies. The order is the cycling order
// of the model switch.
type Model int32

const (
	ModelShimmer Model = iota
	ModelPlate
	ModelAllPassDemo

	NumModels = 3
)

var modelNames = [NumModels]string{
	ModelShimmer:     "shimmer",
	ModelPlate:       "plate",
	ModelAllPassDemo: "allpass-demo",
}

// String returns the model name used in presets and on the command line.
func (m Model) String() string {
	if m < 0 || int(m) >= NumModels {
		return "unknown"
	}
	return modelNames[m]
}

// Next returns the model after m, wrapping to the first.
func (m Model) Next() Model {
	return Model((int(m) + 1) % NumModels)
}

// Models returns every model in cycling order.
func Models() []Model {
	out := make([]Model, NumModels)
	for i := range out {
		out[i] = Model(i)
	}
	return out
}

// ParseModel returns the model named s (case-insensitive).
func ParseModel(s string) (Model, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modelNames {
		if n == name {
			return Model(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}
