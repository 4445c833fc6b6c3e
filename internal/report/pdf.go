package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait with uniform margins. Every content page shows one
// page-height strip of the captured section image.
const (
	pageWidthMM   = 210.0
	pageHeightMM  = 297.0
	pageMarginMM  = 12.0
	contentWidth  = pageWidthMM - 2*pageMarginMM
	contentHeight = pageHeightMM - 2*pageMarginMM
)

type titleInfo struct {
	ProgramName  string
	SectionLabel string
	GeneratedAt  time.Time
}

func newReportPDF(info titleInfo) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - %s", info.ProgramName, info.SectionLabel), true)

	pdf.AddPage()
	pdf.SetY(90)
	pdf.SetFont("Helvetica", "B", 26)
	name := info.ProgramName
	if name == "" {
		name = "Program Assessment"
	}
	pdf.MultiCell(0, 12, name, "", "C", false)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 18)
	pdf.MultiCell(0, 9, info.SectionLabel, "", "C", false)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 6, "Generated "+info.GeneratedAt.Format("2 January 2006 15:04"), "", "C", false)
	pdf.SetTextColor(0, 0, 0)

	return pdf
}

// appendImagePages decodes the captured PNG, slices it into page-height
// strips, and appends one page per strip. The image is repositioned
// upward by one page-height increment per additional page until its whole
// height is covered. Returns the number of content pages added.
func appendImagePages(pdf *gofpdf.Fpdf, capture []byte) (int, error) {
	img, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return 0, fmt.Errorf("decode capture: %w", err)
	}

	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return 0, fmt.Errorf("decode capture: image does not support slicing")
	}

	bounds := img.Bounds()
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()
	if imgWidth == 0 || imgHeight == 0 {
		return 0, fmt.Errorf("decode capture: empty image")
	}

	// Page-height strip measured in source pixels, preserving the aspect
	// ratio of the printed content box.
	stripHeight := int(float64(imgWidth) * contentHeight / contentWidth)
	if stripHeight <= 0 {
		stripHeight = imgHeight
	}

	pages := 0
	for top := bounds.Min.Y; top < bounds.Max.Y; top += stripHeight {
		bottom := top + stripHeight
		if bottom > bounds.Max.Y {
			bottom = bounds.Max.Y
		}
		strip := sub.SubImage(image.Rect(bounds.Min.X, top, bounds.Max.X, bottom))

		var buf bytes.Buffer
		if err := png.Encode(&buf, strip); err != nil {
			return pages, fmt.Errorf("encode page strip: %w", err)
		}

		name := fmt.Sprintf("strip-%d", pages)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		renderedHeight := float64(bottom-top) * contentWidth / float64(imgWidth)
		pdf.AddPage()
		pdf.ImageOptions(name, pageMarginMM, pageMarginMM, contentWidth, renderedHeight, false, opts, 0, "")
		pages++
	}

	return pages, nil
}

// appendErrorAnnotation writes an inline failure note so a degraded
// export still carries an explanation instead of silently missing pages.
func appendErrorAnnotation(pdf *gofpdf.Fpdf, captureErr error) {
	pdf.Ln(16)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(178, 34, 34)
	pdf.MultiCell(0, 7, "Section capture failed", "", "C", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, captureErr.Error(), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return buf.Bytes(), nil
}
