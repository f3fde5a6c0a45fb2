package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fdnverb/dsp/core"
)

// DefaultWorkspaceSize is the sample capacity of the reference configuration.
// It bounds the largest of the fixed reverb topologies.
const DefaultWorkspaceSize = core.DefaultWorkspaceSize

// Errors returned while building a workspace layout.
var (
	ErrInvalidCapacity   = errors.New("delay: workspace capacity must be > 0")
	ErrInvalidExtent     = errors.New("delay: invalid region extent")
	ErrWorkspaceOverflow = errors.New("delay: topology exceeds workspace capacity")
)

// Workspace is the single contiguous block of sample storage from which all
// delay regions are carved. It is never resized after construction.
type Workspace struct {
	samples []float64
}

// NewWorkspace returns a zeroed workspace holding capacity samples.
func NewWorkspace(capacity int) (*Workspace, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Workspace{samples: make([]float64, capacity)}, nil
}

// Len returns the workspace capacity in samples.
func (w *Workspace) Len() int {
	return len(w.samples)
}

// Clear zeroes every sample. Region layouts stay valid.
func (w *Workspace) Clear() {
	clear(w.samples)
}

// Span returns the storage reserved for r. The returned slice aliases the
// workspace and cannot be appended past the region.
func (w *Workspace) Span(r Region) []float64 {
	end := r.Offset + r.Span()
	return w.samples[r.Offset:end:end]
}

// Extent is the requested size of one region.
// Headroom is extra history reserved for fractional reads that swing past
// the nominal capacity.
type Extent struct {
	Capacity int
	Headroom int
}

// Span returns the total number of samples the extent occupies.
func (e Extent) Span() int {
	return e.Capacity + e.Headroom
}

// Region is a non-owning view descriptor into a workspace.
type Region struct {
	Offset   int
	Capacity int
	Headroom int
}

// Span returns the number of samples reserved for the region.
func (r Region) Span() int {
	return r.Capacity + r.Headroom
}

// End returns the first offset past the region.
func (r Region) End() int {
	return r.Offset + r.Span()
}

// TotalSpan returns the number of samples a topology with the given extents
// requires.
func TotalSpan(extents []Extent) int {
	total := 0
	for _, e := range extents {
		total += e.Span()
	}
	return total
}

// Partition carves ws into consecutive regions, one per extent, in order.
// Offsets are the running sum of the preceding spans, so the same extent
// list always yields the same layout.
func Partition(ws *Workspace, extents []Extent) ([]Region, error) {
	regions := make([]Region, len(extents))
	if err := PartitionInto(regions, ws.Len(), extents); err != nil {
		return nil, err
	}
	return regions, nil
}

// PartitionInto is the allocation-free form of [Partition]. dst must hold at
// least len(extents) regions.
func PartitionInto(dst []Region, capacity int, extents []Extent) error {
	if len(dst) < len(extents) {
		return fmt.Errorf("delay: partition needs %d regions, got %d", len(extents), len(dst))
	}

	offset := 0
	for i, e := range extents {
		if e.Capacity <= 0 || e.Headroom < 0 {
			return fmt.Errorf("%w: region %d capacity=%d headroom=%d", ErrInvalidExtent, i, e.Capacity, e.Headroom)
		}
		if offset+e.Span() > capacity {
			return fmt.Errorf("%w: region %d ends at %d, capacity %d", ErrWorkspaceOverflow, i, offset+e.Span(), capacity)
		}
		dst[i] = Region{Offset: offset, Capacity: e.Capacity, Headroom: e.Headroom}
		offset += e.Span()
	}
	return nil
}
