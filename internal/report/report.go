// Package report lays the pipeline's results out as a paginated PDF.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"vidinsight/internal/model"
	"vidinsight/internal/translate"
)

// ReportError is a layout failure. Encoding problems never surface
// here; they degrade inside toLatin1.
type ReportError struct {
	Err error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report generation failed: %v", e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// A transcript longer than this starts on its own page.
const freshPageThreshold = 1200

// Build renders the analysis into PDF bytes.
func Build(a *model.Analysis) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Video Insights Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, "Video Insights Report", "", "L", false)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, toLatin1(fmt.Sprintf("%s (generated %s)", a.URL, a.CreatedAt.Format(time.RFC1123))), "", "L", false)
	pdf.Ln(4)

	if a.VideoInfo != nil {
		writeMetadata(pdf, a.VideoInfo)
	}

	writeSection(pdf, "Summary", a.Summary)

	if a.Translation != nil {
		title := "Translation (" + translate.NameForCode(a.Translation.TargetLanguage) + ")"
		body := a.Translation.Text
		if a.Translation.Warning != "" {
			body = a.Translation.Warning + "\n\n" + body
		}
		writeSection(pdf, title, body)
	}

	if len(a.Transcript) > freshPageThreshold {
		pdf.AddPage()
	}
	writeSection(pdf, "Transcript", a.Transcript)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ReportError{Err: err}
	}
	return buf.Bytes(), nil
}

func writeMetadata(pdf *gofpdf.Fpdf, info *model.VideoInfo) {
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 8, "Video", "", "L", false)
	pdf.SetFont("Arial", "", 11)

	if info.Title != nil {
		pdf.MultiCell(0, 6, toLatin1("Title: "+*info.Title), "", "L", false)
	}
	if info.Author != nil {
		pdf.MultiCell(0, 6, toLatin1("Author: "+*info.Author), "", "L", false)
	}
	if info.DurationSeconds != nil {
		d := time.Duration(*info.DurationSeconds) * time.Second
		pdf.MultiCell(0, 6, "Duration: "+d.String(), "", "L", false)
	}
	if info.ViewCount != nil {
		pdf.MultiCell(0, 6, fmt.Sprintf("Views: %d", *info.ViewCount), "", "L", false)
	}
	pdf.Ln(4)
}

func writeSection(pdf *gofpdf.Fpdf, title, body string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 8, toLatin1(title), "", "L", false)
	pdf.SetFont("Arial", "", 11)
	if body == "" {
		body = "(empty)"
	}
	pdf.MultiCell(0, 6, toLatin1(body), "", "L", false)
	pdf.Ln(4)
}

// Filename names the downloadable artifact with a timestamp to avoid
// collisions.
func Filename(at time.Time) string {
	return "report_" + at.Format("20060102_150405") + ".pdf"
}
