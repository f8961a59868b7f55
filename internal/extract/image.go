// ABOUTME: Image extraction producing a self-contained data-URI record
// ABOUTME: Downstream consumers only reference or display images, never compute on pixels
package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/dvergara/nexo/internal/models"
)

// ExtractImage reads an image file and returns its embeddable representation:
// the original bytes re-encoded as a base64 data URI plus basic geometry.
func ExtractImage(path string) (*models.ImageContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leyendo imagen: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return &models.ImageContent{
		DataURI: fmt.Sprintf("data:image/%s;base64,%s", format, encoded),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Mode:    colorModeName(cfg.ColorModel),
		Format:  format,
	}, nil
}

// colorModeName maps a decoded color model onto a short mode tag
func colorModeName(model color.Model) string {
	if _, ok := model.(color.Palette); ok {
		return "P"
	}
	switch model {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel:
		return "RGB"
	case color.CMYKModel:
		return "CMYK"
	default:
		return "RGB"
	}
}
