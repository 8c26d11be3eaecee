package imgio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
	"golang.org/x/image/tiff"
)

func TestReadWriteGrayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.png")

	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 0, 0, 0), 20, 30, gocv.MatTypeCV8U)
	defer m.Close()

	require.NoError(t, WriteGray(path, m))

	back, err := ReadGray(path)
	require.NoError(t, err)
	defer back.Close()

	require.Equal(t, 20, back.Rows())
	require.Equal(t, 30, back.Cols())
	require.EqualValues(t, 200, back.GetUCharAt(10, 15))
}

func TestReadGrayMissingFile(t *testing.T) {
	_, err := ReadGray(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestWriteTIFF16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chn.tif")

	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(4096, 0, 0, 0), 8, 12, gocv.MatTypeCV16U)
	defer m.Close()
	m.SetShortAt(3, 5, 1234)

	require.NoError(t, WriteTIFF16(path, m))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := tiff.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 12, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())

	r, _, _, _ := img.At(5, 3).RGBA()
	require.EqualValues(t, 1234, r)
}

func TestWriteTIFF16RejectsWrongDepth(t *testing.T) {
	m := gocv.Zeros(4, 4, gocv.MatTypeCV8U)
	defer m.Close()

	err := WriteTIFF16(filepath.Join(t.TempDir(), "bad.tif"), m)
	require.Error(t, err)
}
