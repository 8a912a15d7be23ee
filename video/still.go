package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// SaveStill encodes one raw RGB24 frame as a PNG file.
func (f *FFmpeg) SaveStill(path string, frame []byte, meta Metadata) error {
	if len(frame) != meta.FrameSize() {
		return fmt.Errorf("frame size %d does not match %dx%d", len(frame), meta.Width, meta.Height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, meta.Width, meta.Height))
	for i := 0; i < meta.Width*meta.Height; i++ {
		img.Pix[i*4+0] = frame[i*3+0]
		img.Pix[i*4+1] = frame[i*3+1]
		img.Pix[i*4+2] = frame[i*3+2]
		img.Pix[i*4+3] = 0xff
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create still %s: %w", path, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode still %s: %w", path, err)
	}
	return nil
}
