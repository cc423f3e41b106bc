package process

import (
	"gocv.io/x/gocv"
)

// EncodeJPEG compresses the frame at the given quality. The returned slice
// is an independent copy, safe to hold after the Mat is released.
func EncodeJPEG(m *gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *m, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
