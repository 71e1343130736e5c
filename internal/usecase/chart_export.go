package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// ExportChartData runs the chart pipeline and renders the rows as a file.
// An empty format defaults to xlsx.
func (uc *dashboardUsecase) ExportChartData(ctx context.Context, userID string, query domain.ChartQuery) ([]byte, string, error) {
	if query.Format == "" {
		query.Format = domain.ExportFormatXLSX
	}

	result, err := uc.chartData(ctx, userID, query)
	if err != nil {
		return nil, "", err
	}

	headers, records := chartRecords(result)
	filename := fmt.Sprintf("applications_%s_%s.%s", result.Type, uc.now().Format("20060102_150405"), query.Format)

	var data []byte
	switch query.Format {
	case domain.ExportFormatCSV:
		data, err = exportCSV(headers, records)
	default:
		data, err = exportExcel(string(result.Type), headers, records)
	}
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, filename, nil
}

// chartRecords flattens chart rows into a header row and string records.
func chartRecords(result *domain.ChartResult) ([]string, [][]string) {
	if result.Type == domain.ChartByJob {
		records := make([][]string, 0, len(result.ByJob))
		for _, row := range result.ByJob {
			records = append(records, []string{row.JobID, row.JobTitle, strconv.Itoa(row.Count)})
		}
		return []string{"JOB ID", "JOB TITLE", "APPLICATIONS"}, records
	}

	records := make([][]string, 0, len(result.Monthly))
	for _, row := range result.Monthly {
		records = append(records, []string{row.Month, strconv.Itoa(row.Count)})
	}
	return []string{"MONTH", "APPLICATIONS"}, records
}

func exportExcel(sheetName string, headers []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	countCol := len(headers)
	for rowIdx, record := range records {
		for colIdx, value := range record {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			// Counts stay numeric so spreadsheet charts work on them
			if colIdx+1 == countCol {
				if n, err := strconv.Atoi(value); err == nil {
					f.SetCellValue(sheetName, cell, n)
					continue
				}
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	escaped := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = escapeCSVCell(cell)
		}
		escaped = append(escaped, row)
	}
	if err := w.WriteAll(escaped); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeCSVCell stops spreadsheet apps from evaluating user-entered text such
// as job titles as a formula.
func escapeCSVCell(cell string) string {
	if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}
