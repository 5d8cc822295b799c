// Package export writes batch analysis results to spreadsheet reports.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Sheet names, in workbook order.
const (
	SummarySheet = "Summary"
	SkillsSheet  = "Skills"
	MatchesSheet = "Role Matches"
)

// ReportRow is one analyzed document. Err is set instead of Analysis when the
// document could not be analyzed.
type ReportRow struct {
	Name     string
	Analysis *types.ResumeAnalysis
	Err      string
}

// Score bands used for colour coding on the Role Matches sheet.
const (
	strongMatch = 50
	fairMatch   = 30
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteWorkbook writes rows to an .xlsx workbook at path, appending the
// extension if it is missing.
func WriteWorkbook(path string, rows []ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{SkillsSheet, MatchesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummary(f, rows, header); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSkills(f, rows, header); err != nil {
		return fmt.Errorf("failed to create skills sheet: %w", err)
	}
	if err := writeMatches(f, rows, header); err != nil {
		return fmt.Errorf("failed to create role matches sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, rows []ReportRow, header int) error {
	sheet := SummarySheet
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	analyzed, failed := 0, 0
	topRoles := make(map[string]int)
	var order []string
	for _, r := range rows {
		if r.Analysis == nil {
			failed++
			continue
		}
		analyzed++
		if top, ok := r.Analysis.TopMatch(); ok {
			if topRoles[top.Role] == 0 {
				order = append(order, top.Role)
			}
			topRoles[top.Role]++
		}
	}

	common, best := "", 0
	for _, role := range order {
		if topRoles[role] > best {
			common, best = role, topRoles[role]
		}
	}

	lines := [][]any{
		{"Skill Match Report"},
		{},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Documents:", len(rows)},
		{"Analyzed:", analyzed},
		{"Failed:", failed},
		{"Most common top role:", common},
	}
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, cell("A", i+1), &line); err != nil {
			return err
		}
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", "B1", header)
}

func writeSkills(f *excelize.File, rows []ReportRow, header int) error {
	sheet := SkillsSheet
	headers := []any{"Document", "Skill Count", "Skills", "Programming Languages", "Selected Role", "Error"}
	if err := writeHeader(f, sheet, headers, header); err != nil {
		return err
	}
	for col, width := range []float64{25, 12, 60, 30, 25, 40} {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	for i, r := range rows {
		line := []any{r.Name, 0, "", "", "", r.Err}
		if a := r.Analysis; a != nil {
			line = []any{
				r.Name,
				len(a.ExtractedSkills),
				strings.Join(a.ExtractedSkills, ", "),
				strings.Join(a.ProgrammingLanguages, ", "),
				a.SelectedRole,
				"",
			}
		}
		if err := f.SetSheetRow(sheet, cell("A", i+2), &line); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func writeMatches(f *excelize.File, rows []ReportRow, header int) error {
	sheet := MatchesSheet
	headers := []any{"Document", "Rank", "Role", "Match Score"}
	if err := writeHeader(f, sheet, headers, header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 30); err != nil {
		return err
	}

	bands := make(map[string]int, 3)
	for name, color := range map[string]string{"strong": "C6EFCE", "fair": "FFEB9C", "weak": "FFC7CE"} {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		bands[name] = style
	}

	row := 2
	for _, r := range rows {
		if r.Analysis == nil {
			continue
		}
		for rank, m := range r.Analysis.MatchedRoles {
			line := []any{r.Name, rank + 1, m.Role, m.MatchScore}
			if err := f.SetSheetRow(sheet, cell("A", row), &line); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell("A", row), cell("D", row), bands[band(m.MatchScore)]); err != nil {
				return err
			}
			row++
		}
	}

	if row > 2 {
		if err := f.AutoFilter(sheet, fmt.Sprintf("A1:D%d", row-1), nil); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func band(score int) string {
	switch {
	case score >= strongMatch:
		return "strong"
	case score >= fairMatch:
		return "fair"
	default:
		return "weak"
	}
}

func writeHeader(f *excelize.File, sheet string, headers []any, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
