package motion

import "fmt"

// Model is a stateful background-subtraction model. Apply consumes one gray8
// frame in presentation order and returns a foreground mask of the same
// dimensions where higher values mean stronger foreground response. The
// returned slice is owned by the model and valid until the next call.
type Model interface {
	Apply(frame []byte) ([]byte, error)
}

// AdaptiveModel keeps a per-pixel running mean and mean absolute deviation.
// A pixel is foreground when it deviates from the running mean by more than
// a multiple of its observed deviation. The statistics adapt each frame, so
// slow lighting changes are absorbed while fast changes flag foreground.
//
// The model is order-sensitive and owned by exactly one job; it is never
// shared or reused across videos.
type AdaptiveModel struct {
	width  int
	height int
	rate   float64
	mean   []float64
	dev    []float64
	mask   []byte
	frames int
}

const (
	// warmupFrames suppresses foreground output while the statistics settle.
	warmupFrames = 15
	// devGate scales the deviation estimate into a foreground gate.
	devGate = 2.5
	// minGate is the deviation floor, in intensity levels, below which sensor
	// noise would dominate.
	minGate = 12.0
)

// NewAdaptiveModel constructs a model for frames of the given dimensions.
// rate is the per-frame learning rate in (0, 1).
func NewAdaptiveModel(width, height int, rate float64) *AdaptiveModel {
	if rate <= 0 || rate >= 1 {
		rate = 0.05
	}
	size := width * height
	return &AdaptiveModel{
		width:  width,
		height: height,
		rate:   rate,
		mean:   make([]float64, size),
		dev:    make([]float64, size),
		mask:   make([]byte, size),
	}
}

// Apply updates the model with the next frame and returns the foreground mask.
func (m *AdaptiveModel) Apply(frame []byte) ([]byte, error) {
	if len(frame) != m.width*m.height {
		return nil, fmt.Errorf("frame size %d does not match %dx%d", len(frame), m.width, m.height)
	}

	warm := m.frames >= warmupFrames
	if m.frames == 0 {
		// Seed the mean with the first frame so the warmup period measures
		// change rather than distance from zero.
		for i, v := range frame {
			m.mean[i] = float64(v)
		}
	}

	for i, v := range frame {
		value := float64(v)
		diff := value - m.mean[i]
		if diff < 0 {
			diff = -diff
		}

		if warm {
			gate := m.dev[i] * devGate
			if gate < minGate {
				gate = minGate
			}
			if diff > gate {
				m.mask[i] = 255
			} else {
				m.mask[i] = 0
			}
		} else {
			m.mask[i] = 0
		}

		m.mean[i] += m.rate * (value - m.mean[i])
		m.dev[i] += m.rate * (diff - m.dev[i])
	}

	m.frames++
	return m.mask, nil
}
