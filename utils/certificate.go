package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries everything the certificate PDF renders. The
// renderer is a pure function of this struct; names are passed in fresh on
// every download so the document always reflects the current student and
// course titles.
type CertificateData struct {
	StudentName  string
	CourseName   string
	IssuedAt     time.Time
	SerialNumber string
}

// GenerateCertificatePDF renders the completion certificate as a PDF
func GenerateCertificatePDF(data CertificateData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Double border
	pdf.SetDrawColor(30, 27, 75)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, w-16, h-16, "D")
	pdf.SetDrawColor(200, 169, 81)
	pdf.SetLineWidth(0.4)
	pdf.Rect(11, 11, w-22, h-22, "D")

	pdf.SetTextColor(30, 27, 75)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetXY(0, 35)
	pdf.CellFormat(w, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(0, 58)
	pdf.CellFormat(w, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(0, 72)
	pdf.CellFormat(w, 12, data.StudentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(0, 90)
	pdf.CellFormat(w, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(0, 102)
	pdf.CellFormat(w, 10, data.CourseName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(0, 122)
	pdf.CellFormat(w, 8, "Issued on "+data.IssuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(0, h-30)
	pdf.CellFormat(w, 6, fmt.Sprintf("Certificate ID: %s", data.SerialNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(w, 6, "Kingdom Way Academy", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
