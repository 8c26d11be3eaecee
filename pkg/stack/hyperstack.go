package stack

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Hyperstack holds an acquisition regrouped by channel: Channels[c][z] is
// the z-th slice of channel c. Slices alias the frames they were built
// from; closing the source frames invalidates the hyperstack.
type Hyperstack struct {
	Channels [][]gocv.Mat
}

// NumChannels returns the channel count.
func (h *Hyperstack) NumChannels() int { return len(h.Channels) }

// Depth returns the number of slices per channel.
func (h *Hyperstack) Depth() int {
	if len(h.Channels) == 0 {
		return 0
	}
	return len(h.Channels[0])
}

// GroupHyperstack regroups an interleaved frame sequence, as the
// microscope writes it (z0/c0, z0/c1, z1/c0, ...), into per-channel
// stacks. The frame count must be divisible by numChannels.
func GroupHyperstack(frames []gocv.Mat, numChannels int) (*Hyperstack, error) {
	if numChannels <= 0 {
		return nil, fmt.Errorf("hyperstack: channel count %d must be positive", numChannels)
	}
	if len(frames)%numChannels != 0 {
		return nil, fmt.Errorf("hyperstack: %d frames do not divide into %d channels", len(frames), numChannels)
	}

	depth := len(frames) / numChannels
	channels := make([][]gocv.Mat, numChannels)
	for c := range channels {
		channels[c] = make([]gocv.Mat, depth)
		for z := 0; z < depth; z++ {
			channels[c][z] = frames[z*numChannels+c]
		}
	}
	return &Hyperstack{Channels: channels}, nil
}
