package reports

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"staffdesk/internal/domain/staff"
)

var directoryColumns = []struct {
	title string
	width float64
}{
	{"ID", 28},
	{"Name", 50},
	{"Email", 70},
	{"Department", 45},
	{"Title", 55},
	{"Role", 18},
}

// WriteDirectoryPDF renders records as a landscape A4 table.
func WriteDirectoryPDF(w io.Writer, records []staff.Employee, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Employee directory", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Employee directory")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d employees", generatedAt.UTC().Format("2006-01-02 15:04 MST"), len(records)))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range directoryColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, e := range records {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.FirstName + " " + e.LastName,
			e.Email,
			e.Company.Department,
			e.Company.Title,
			e.Role,
		}
		for i, col := range directoryColumns {
			pdf.CellFormat(col.width, 6, tr(row[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render directory pdf: %w", err)
	}
	return nil
}
