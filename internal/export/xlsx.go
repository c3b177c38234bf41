package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// XLSX writes the candidate list as a styled workbook: a Candidates sheet
// mirroring the CSV columns and a Summary sheet with funnel statistics.
func XLSX(candidates []*domain.Candidate, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	candidatesSheet := "Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, candidates); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, candidates); err != nil {
		return fmt.Errorf("failed to write candidates sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheetName string, candidates []*domain.Candidate) error {
	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 20)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Candidate Funnel Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Generated:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), time.Now().Format("2006-01-02 15:04:05"))
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total Candidates:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), len(candidates))
	row += 2

	assessed := 0
	disqualified := 0
	fitCounts := map[string]int{}
	stageCounts := map[domain.PipelineStage]int{}
	for _, c := range candidates {
		if c.Assessment != nil {
			assessed++
		}
		if c.Disqualified() {
			disqualified++
		}
		if c.FitCategory != nil {
			fitCounts[*c.FitCategory]++
		}
		stageCounts[c.AdminView().PipelineStage]++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Fit Categories:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	for _, category := range []string{domain.FitHighFit, domain.FitReview, domain.FitNotAligned} {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), category+":")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), fitCounts[category])
		row++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Assessments Completed:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), assessed)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Disqualified:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), disqualified)
	row += 2

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Pipeline Stages:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	for _, stage := range domain.PipelineStages {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), string(stage)+":")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stageCounts[stage])
		row++
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, sheetName string, candidates []*domain.Candidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	highFitStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	reviewStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	notAlignedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := Headers()
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 28)

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}

	for i, c := range candidates {
		rowNum := i + 2
		for col, cell := range Row(c) {
			name, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, name, cell)
		}

		if c.FitCategory != nil {
			var style int
			switch *c.FitCategory {
			case domain.FitHighFit:
				style = highFitStyle
			case domain.FitReview:
				style = reviewStyle
			case domain.FitNotAligned:
				style = notAlignedStyle
			}
			if style != 0 {
				f.SetCellStyle(sheetName,
					fmt.Sprintf("A%d", rowNum),
					fmt.Sprintf("%s%d", lastCol, rowNum),
					style,
				)
			}
		}
	}

	if len(candidates) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:%s%d", lastCol, len(candidates)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
