package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/hr-screening/internal/models"
)

const exportTimeLayout = "2006-01-02 15:04:05"

type ExportService interface {
	ScreeningsWorkbook(screenings []models.Screening) ([]byte, error)
	FeedbackWorkbook(analyses []models.FeedbackAnalysis) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

type column struct {
	title string
	width float64
}

var screeningColumns = []column{
	{"ID", 38},
	{"File Name", 30},
	{"Match Score", 12},
	{"Extraction", 16},
	{"Analysis Source", 18},
	{"Index Status", 14},
	{"Created At", 20},
}

var feedbackColumns = []column{
	{"ID", 38},
	{"Sentiment Score", 16},
	{"Interpretation", 18},
	{"Attrition Risk", 14},
	{"Analysis Source", 18},
	{"Index Status", 14},
	{"Created At", 20},
	{"Feedback", 60},
}

// ScreeningsWorkbook implements ExportService.
func (s *exportService) ScreeningsWorkbook(screenings []models.Screening) ([]byte, error) {
	rows := make([][]interface{}, 0, len(screenings))
	for _, sc := range screenings {
		rows = append(rows, []interface{}{
			sc.ID.String(),
			sc.FileName,
			sc.MatchScore,
			sc.ExtractionMethod,
			sc.AnalysisSource,
			string(sc.IndexStatus),
			sc.CreatedAt.Format(exportTimeLayout),
		})
	}

	return buildWorkbook("Screenings", screeningColumns, rows)
}

// FeedbackWorkbook implements ExportService.
func (s *exportService) FeedbackWorkbook(analyses []models.FeedbackAnalysis) ([]byte, error) {
	rows := make([][]interface{}, 0, len(analyses))
	for _, fa := range analyses {
		rows = append(rows, []interface{}{
			fa.ID.String(),
			fa.SentimentScore,
			fa.Interpretation,
			fa.AttritionRisk,
			fa.AnalysisSource,
			string(fa.IndexStatus),
			fa.CreatedAt.Format(exportTimeLayout),
			fa.FeedbackText,
		})
	}

	return buildWorkbook("Feedback", feedbackColumns, rows)
}

func buildWorkbook(sheetName string, columns []column, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		f.SetColWidth(sheetName, name, name, col.width)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", name), col.title)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for r, values := range rows {
		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetDocProps(&excelize.DocProperties{
		Title:   sheetName + " export",
		Created: time.Now().Format(time.RFC3339),
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
