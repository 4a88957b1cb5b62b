package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Fill colors shared by both renderers: header green, correct rows pale
// green, incorrect rows pale salmon.
const (
	headerFill    = "D9EAD3"
	correctFill   = "E2EFDA"
	incorrectFill = "FCE4D6"
)

func isCorrectColumn(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "is correct", "correct", "ok":
		return true
	}
	return false
}

func isScoreColumn(name string) bool {
	return strings.ToLower(strings.TrimSpace(name)) == "score"
}

func correctColumnIndex(columns []string) int {
	for i, c := range columns {
		if isCorrectColumn(c) {
			return i
		}
	}
	return -1
}

func renderWorkbook(data TableData, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	correctStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{correctFill}},
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	incorrectStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{incorrectFill}},
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	for col, name := range data.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	okCol := correctColumnIndex(data.Columns)
	for rowIdx, row := range data.Rows {
		style := cellStyle
		if okCol >= 0 && okCol < len(row) {
			if strings.EqualFold(row[okCol], "true") {
				style = correctStyle
			} else {
				style = incorrectStyle
			}
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return nil, err
			}
		}
	}

	// Fit column widths to content, capped so long answers wrap.
	for col, name := range data.Columns {
		width := len(name)
		for _, row := range data.Rows {
			if col < len(row) && len(row[col]) > width {
				width = len(row[col])
			}
		}
		width += 2
		if width > 30 {
			width = 30
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, colName, colName, float64(width)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(data TableData, title, email string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	if email != "" {
		pdf.CellFormat(0, 6, "Email: "+email, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Generated on: "+time.Now().Format(time.DateTime), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, data)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	colW := usable / float64(len(data.Columns))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(217, 234, 211) // headerFill
	for _, name := range data.Columns {
		pdf.CellFormat(colW, 8, clipCell(name, colW), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	okCol := correctColumnIndex(data.Columns)
	for _, row := range data.Rows {
		fill := false
		if okCol >= 0 && okCol < len(row) {
			fill = true
			if strings.EqualFold(row[okCol], "true") {
				pdf.SetFillColor(226, 239, 218) // correctFill
			} else {
				pdf.SetFillColor(252, 228, 214) // incorrectFill
			}
		}
		for col := range data.Columns {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			pdf.CellFormat(colW, 7, clipCell(value, colW), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSummary adds the aggregate block when the data carries correctness
// and score columns.
func writeSummary(pdf *fpdf.Fpdf, data TableData) {
	okCol, scoreCol := -1, -1
	for i, c := range data.Columns {
		if isCorrectColumn(c) {
			okCol = i
		}
		if isScoreColumn(c) {
			scoreCol = i
		}
	}
	if okCol < 0 || scoreCol < 0 || len(data.Rows) == 0 {
		return
	}

	answered := len(data.Rows)
	correct := 0
	total := 0.0
	for _, row := range data.Rows {
		if okCol < len(row) && strings.EqualFold(row[okCol], "true") {
			correct++
		}
		if scoreCol < len(row) {
			total += parseScoreCell(row[scoreCol])
		}
	}
	accuracy := 0.0
	if answered > 0 {
		accuracy = float64(correct) / float64(answered) * 100
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Summary Statistics:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Questions Answered: %d", answered), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Correct Answers: %d", correct), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Score: %g", total), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Accuracy: %.1f%%", accuracy), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func parseScoreCell(v string) float64 {
	var score float64
	if _, err := fmt.Sscanf(strings.TrimSpace(v), "%f", &score); err != nil {
		return 0
	}
	return score
}

// clipCell truncates text that cannot fit one table cell.
func clipCell(value string, width float64) string {
	max := int(width / 1.8)
	if max < 4 {
		max = 4
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}
