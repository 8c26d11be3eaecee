// Package imgio reads and writes the single-channel images the pipeline
// consumes and produces: binary masks, labeled masks, and 16-bit
// acquisition channels.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"gocv.io/x/gocv"
	"golang.org/x/image/tiff"
)

// ReadGray loads an image as a single grayscale channel, preserving the
// source bit depth (8 or 16 bit).
func ReadGray(path string) (gocv.Mat, error) {
	m := gocv.IMRead(path, gocv.IMReadGrayScale|gocv.IMReadAnyDepth)
	if m.Empty() {
		return gocv.NewMat(), fmt.Errorf("read %s: not a decodable image", path)
	}
	return m, nil
}

// WriteGray persists a Mat through the OpenCV encoders; the format
// follows the file extension.
func WriteGray(path string, m gocv.Mat) error {
	if !gocv.IMWrite(path, m) {
		return fmt.Errorf("write %s: encoding failed", path)
	}
	return nil
}

// WriteTIFF16 encodes a single-channel CV_16U Mat as a deflate-compressed
// 16-bit grayscale TIFF, the interchange format of the acquisition
// toolchain.
func WriteTIFF16(path string, m gocv.Mat) error {
	if m.Type() != gocv.MatTypeCV16U {
		return fmt.Errorf("write %s: mat type %d is not 16-bit grayscale", path, m.Type())
	}

	data, err := m.DataPtrUint16()
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	img := image.NewGray16(image.Rect(0, 0, m.Cols(), m.Rows()))
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			img.SetGray16(x, y, color.Gray16{Y: data[y*m.Cols()+x]})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()

	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
