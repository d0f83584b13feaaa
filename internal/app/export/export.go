package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"audio-notes/internal/app/model"
)

// ToExcel writes all transcript records to a spreadsheet, one row per
// record with the segment count alongside the full text.
func ToExcel(records []model.TranscriptRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Filename"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Segments"
	headerRow.AddCell().Value = "Full Text"

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(r.ID)
		row.AddCell().Value = r.Filename
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = fmt.Sprint(len(r.Segments))
		row.AddCell().Value = r.FullText
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
