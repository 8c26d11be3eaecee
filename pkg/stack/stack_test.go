package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func uniformMat(rows, cols int, value float64, mt gocv.MatType) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, 0, 0, 0), rows, cols, mt)
}

func TestFlatFieldMultiplierOnUniformImage(t *testing.T) {
	img := uniformMat(64, 64, 800, gocv.MatTypeCV16U)
	defer img.Close()

	field, err := FlatFieldMultiplier(img, 10)
	require.NoError(t, err)
	defer field.Close()

	// A uniform image needs no correction: the field is 1 everywhere.
	minVal, maxVal, _, _ := gocv.MinMaxLoc(field)
	require.InDelta(t, 1.0, float64(minVal), 1e-6)
	require.InDelta(t, 1.0, float64(maxVal), 1e-6)
}

func TestFlatFieldMultiplierRejectsBadInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()
	_, err := FlatFieldMultiplier(empty, 10)
	require.Error(t, err)

	zero := gocv.Zeros(32, 32, gocv.MatTypeCV16U)
	defer zero.Close()
	_, err = FlatFieldMultiplier(zero, 10)
	require.Error(t, err, "all-zero illumination estimate must not divide")
}

func TestNormalizeImagePreservesUniformValues(t *testing.T) {
	img := uniformMat(32, 32, 500, gocv.MatTypeCV16U)
	defer img.Close()

	field, err := FlatFieldMultiplier(img, 5)
	require.NoError(t, err)
	defer field.Close()

	out, err := NormalizeImage(img, field)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, gocv.MatTypeCV16U, out.Type(), "bit depth not preserved")
	require.EqualValues(t, 500, out.GetShortAt(16, 16))
}

func TestGroupHyperstack(t *testing.T) {
	// Six interleaved frames, two channels: z0/c0, z0/c1, z1/c0, ...
	// Each frame is tagged with a distinctive uniform value.
	frames := make([]gocv.Mat, 6)
	for i := range frames {
		frames[i] = uniformMat(4, 4, float64(10*i), gocv.MatTypeCV8U)
		defer frames[i].Close()
	}

	h, err := GroupHyperstack(frames, 2)
	require.NoError(t, err)
	require.Equal(t, 2, h.NumChannels())
	require.Equal(t, 3, h.Depth())

	for c := 0; c < 2; c++ {
		for z := 0; z < 3; z++ {
			want := uint8(10 * (z*2 + c))
			require.Equal(t, want, h.Channels[c][z].GetUCharAt(0, 0),
				"channel %d slice %d holds the wrong frame", c, z)
		}
	}
}

func TestGroupHyperstackUnevenFrames(t *testing.T) {
	frames := make([]gocv.Mat, 5)
	for i := range frames {
		frames[i] = gocv.Zeros(4, 4, gocv.MatTypeCV8U)
		defer frames[i].Close()
	}

	_, err := GroupHyperstack(frames, 2)
	require.Error(t, err)
}

func TestChannelRatio(t *testing.T) {
	pro := uniformMat(16, 16, 1000, gocv.MatTypeCV16U)
	defer pro.Close()
	lip := uniformMat(16, 16, 250, gocv.MatTypeCV16U)
	defer lip.Close()

	ratio, err := ChannelRatio(pro, lip, 0.999)
	require.NoError(t, err)
	require.InDelta(t, 4.0, ratio, 1e-9)
}

func TestSeparateChannelsSubtractsAndClamps(t *testing.T) {
	pro := uniformMat(16, 16, 1000, gocv.MatTypeCV16U)
	defer pro.Close()
	lip := uniformMat(16, 16, 300, gocv.MatTypeCV16U)
	defer lip.Close()

	// Explicit ratio 2: scaled lipid is 600, difference 400.
	sep, err := SeparateChannels(pro, lip, 2, 0.999)
	require.NoError(t, err)
	defer sep.Close()

	require.Equal(t, gocv.MatTypeCV16U, sep.ProteinMinusLipid.Type())
	require.EqualValues(t, 1000, sep.Protein.GetShortAt(8, 8))
	require.EqualValues(t, 600, sep.Lipid.GetShortAt(8, 8))
	require.EqualValues(t, 400, sep.ProteinMinusLipid.GetShortAt(8, 8))
}

func TestSeparateChannelsClampsNegatives(t *testing.T) {
	pro := uniformMat(8, 8, 100, gocv.MatTypeCV16U)
	defer pro.Close()
	lip := uniformMat(8, 8, 300, gocv.MatTypeCV16U)
	defer lip.Close()

	sep, err := SeparateChannels(pro, lip, 1, 0.999)
	require.NoError(t, err)
	defer sep.Close()

	// 100 - 300 clamps to zero instead of wrapping.
	require.EqualValues(t, 0, sep.ProteinMinusLipid.GetShortAt(4, 4))
}

func TestSeparateChannelsAutoRatio(t *testing.T) {
	pro := uniformMat(8, 8, 800, gocv.MatTypeCV16U)
	defer pro.Close()
	lip := uniformMat(8, 8, 200, gocv.MatTypeCV16U)
	defer lip.Close()

	// Auto ratio 800/200 = 4: the scaled lipid matches the protein and
	// the difference vanishes.
	sep, err := SeparateChannels(pro, lip, 0, 0.999)
	require.NoError(t, err)
	defer sep.Close()

	require.EqualValues(t, 800, sep.Lipid.GetShortAt(4, 4))
	require.EqualValues(t, 0, sep.ProteinMinusLipid.GetShortAt(4, 4))
}
