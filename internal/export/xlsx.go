// Package export renders the file catalog as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/filedash/internal/domain"
)

const sheetName = "Files"

var header = []any{"ID", "Display Name", "Category", "Original Filename", "Uploaded By", "Role", "Uploaded At"}

// WriteFilesXLSX writes files as a single-sheet workbook. uploaders supplies
// the role column; uploaders missing from the map are reported as
// deleted.
func WriteFilesXLSX(w io.Writer, files []domain.File, uploaders map[string]domain.User) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, file := range files {
		row := []any{
			file.ID.String(),
			file.DisplayName,
			file.Category,
			file.OriginalFilename,
			file.UploadedBy,
			domain.UploaderRole(uploaders, file.UploadedBy),
			file.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
