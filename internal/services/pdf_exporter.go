package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"tripspark/internal/models/db_models"
	"tripspark/pkg/utils"
)

// PDFTripExporter renders trips locally into Dir and links them under PublicBaseURL/exports.
// Thai text needs a UTF-8 TrueType font at FontPath; without one the core Arial font is used.
type PDFTripExporter struct {
	Dir           string
	PublicBaseURL string
	FontPath      string
}

func NewPDFTripExporter(dir, publicBaseURL, fontPath string) *PDFTripExporter {
	return &PDFTripExporter{
		Dir:           dir,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		FontPath:      fontPath,
	}
}

func (e *PDFTripExporter) fileName(trip *db_models.Trip) string {
	return fmt.Sprintf("trip-%s.pdf", trip.ID)
}

func (e *PDFTripExporter) Export(ctx context.Context, trip *db_models.Trip) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrExportFailure, err)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create export dir: %v", utils.ErrExportFailure, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Arial"
	if e.FontPath != "" {
		pdf.AddUTF8Font("trip", "", e.FontPath)
		family = "trip"
	}
	pdf.AddPage()

	pdf.SetFont(family, "", 18)
	pdf.Cell(0, 10, trip.Name)
	pdf.Ln(10)
	pdf.SetFont(family, "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d days / %s", trip.Days, trip.Types))
	pdf.Ln(12)

	qrPNG, err := qrcode.Encode(fmt.Sprintf("%s/trips/%s", e.PublicBaseURL, trip.ID), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("%w: qr code: %v", utils.ErrExportFailure, err)
	}
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("trip-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("trip-qr", 165, 8, 30, 30, false, imageOpts, 0, "")

	day := 0
	for _, seg := range trip.PathSegments {
		if seg.Day != day {
			day = seg.Day
			pdf.Ln(4)
			pdf.SetFont(family, "", 14)
			pdf.Cell(0, 8, fmt.Sprintf("Day %d", day))
			pdf.Ln(9)
			pdf.SetFont(family, "", 11)
		}
		pdf.CellFormat(30, 7, seg.StartTime+" - "+seg.EndTime, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, seg.ActivityDescription, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("%w: render: %v", utils.ErrExportFailure, err)
	}

	name := e.fileName(trip)
	if err := pdf.OutputFileAndClose(filepath.Join(e.Dir, name)); err != nil {
		return "", fmt.Errorf("%w: write: %v", utils.ErrExportFailure, err)
	}
	return fmt.Sprintf("%s/exports/%s", e.PublicBaseURL, name), nil
}
