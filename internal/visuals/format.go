// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package visuals

import (
	"fmt"
	"strings"

	"github.com/internetofwater/housing/pkg"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// SupportedFormats lists every image format the renderer can encode.
// eps is absent because the eps canvas cannot draw the color bar image
var SupportedFormats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf"}

// newCanvas returns a canvas that encodes to format.
// Only raster formats use dpi; vector formats are resolution independent
func newCanvas(format string, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	raster := func() *vgimg.Canvas {
		return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	}

	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: raster()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: raster()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: raster()}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	default:
		return nil, fmt.Errorf("%w: %q; expected one of %s", pkg.ErrUnsupportedFormat, format, strings.Join(SupportedFormats, ", "))
	}
}
