package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// Largest logo kept after scaling, in pixels.
const (
	logoMaxWidth  = 600
	logoMaxHeight = 300
)

var logoMIMETypes = []string{"image/png", "image/jpeg", "image/bmp", "image/gif"}

// Logo is a decoded header image, re-encoded as PNG.
type Logo struct {
	Data   []byte
	Width  int
	Height int
}

// Extension is the file extension matching Data.
func (l *Logo) Extension() string { return ".png" }

// LoadLogo reads the image at path. An empty path yields no logo and no
// error. Any other failure is a *ResourceWarning.
func LoadLogo(path string) (*Logo, error) {
	if path == "" {
		return nil, nil
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &ResourceWarning{Resource: "logo", Path: path, Err: err}
	}
	if !isLogoType(mtype) {
		return nil, &ResourceWarning{
			Resource: "logo",
			Path:     path,
			Err:      fmt.Errorf("unsupported image type %s", mtype.String()),
		}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ResourceWarning{Resource: "logo", Path: path, Err: err}
	}

	fitted := imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)
	bounds := fitted.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &ResourceWarning{Resource: "logo", Path: path, Err: errors.New("image is empty")}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, &ResourceWarning{Resource: "logo", Path: path, Err: err}
	}

	return &Logo{Data: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func isLogoType(m *mimetype.MIME) bool {
	for _, t := range logoMIMETypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
