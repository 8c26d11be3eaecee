package stack

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Separated is the three-channel output of channel separation.
type Separated struct {
	// Protein is the protein-dominant channel, unchanged.
	Protein gocv.Mat

	// Lipid is the lipid channel scaled by the separation ratio.
	Lipid gocv.Mat

	// ProteinMinusLipid is the protein channel with the scaled lipid
	// bleed-through subtracted, clamped at zero.
	ProteinMinusLipid gocv.Mat
}

// Close releases all three channels.
func (s *Separated) Close() {
	s.Protein.Close()
	s.Lipid.Close()
	s.ProteinMinusLipid.Close()
}

// ChannelRatio computes the protein/lipid scaling factor as the ratio of
// the two channels' intensity quantiles (0.999 by convention, which
// tracks the bright specimen signal while ignoring hot pixels).
func ChannelRatio(pro, lip gocv.Mat, q float64) (float64, error) {
	num, err := matQuantile(pro, q)
	if err != nil {
		return 0, fmt.Errorf("channel ratio: protein: %w", err)
	}
	den, err := matQuantile(lip, q)
	if err != nil {
		return 0, fmt.Errorf("channel ratio: lipid: %w", err)
	}
	if den == 0 {
		return 0, fmt.Errorf("channel ratio: lipid quantile is zero")
	}
	return num / den, nil
}

// SeparateChannels scales the lipid channel by ratio and subtracts it
// from the protein channel, clamping negatives to zero. A ratio of 0
// auto-computes the factor from the ratioQuantile of both channels. The
// outputs keep the protein channel's bit depth; inputs are not modified.
func SeparateChannels(pro, lip gocv.Mat, ratio, ratioQuantile float64) (*Separated, error) {
	if pro.Cols() != lip.Cols() || pro.Rows() != lip.Rows() {
		return nil, fmt.Errorf("separate: protein %dx%d and lipid %dx%d differ in size",
			pro.Cols(), pro.Rows(), lip.Cols(), lip.Rows())
	}

	if ratio == 0 {
		r, err := ChannelRatio(pro, lip, ratioQuantile)
		if err != nil {
			return nil, err
		}
		ratio = r
	}

	proF := gocv.NewMat()
	defer proF.Close()
	pro.ConvertTo(&proF, gocv.MatTypeCV32F)

	lipF := gocv.NewMat()
	defer lipF.Close()
	lip.ConvertTo(&lipF, gocv.MatTypeCV32F)
	lipF.MultiplyFloat(float32(ratio))

	subF := gocv.NewMat()
	defer subF.Close()
	gocv.Subtract(proF, lipF, &subF)

	clamped := gocv.NewMat()
	defer clamped.Close()
	gocv.Threshold(subF, &clamped, 0, 0, gocv.ThresholdToZero)

	out := &Separated{
		Protein:           pro.Clone(),
		Lipid:             gocv.NewMat(),
		ProteinMinusLipid: gocv.NewMat(),
	}
	lipF.ConvertTo(&out.Lipid, pro.Type())
	clamped.ConvertTo(&out.ProteinMinusLipid, pro.Type())
	return out, nil
}

// matQuantile returns the q quantile of all pixel intensities, linearly
// interpolated between samples.
func matQuantile(m gocv.Mat, q float64) (float64, error) {
	if m.Empty() {
		return 0, fmt.Errorf("empty image")
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("quantile %g outside [0,1]", q)
	}

	f := gocv.NewMat()
	defer f.Close()
	m.ConvertTo(&f, gocv.MatTypeCV64F)

	data, err := f.DataPtrFloat64()
	if err != nil {
		return 0, err
	}
	vals := make([]float64, len(data))
	copy(vals, data)
	sort.Float64s(vals)
	return stat.Quantile(q, stat.LinInterp, vals, nil), nil
}
