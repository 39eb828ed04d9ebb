package archiveservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	archivedomain "github.com/ttv-club/matchday/app/modules/archive/domain"
)

const seasonSheet = "Season"

// ExportSeasonXLSX renders the current season standings as a spreadsheet for
// the club notice board.
func (s *ArchiveService) ExportSeasonXLSX(ctx context.Context) (data []byte, err error) {
	ctx, done := s.instrument(ctx, "ExportSeasonXLSX")
	defer func() { done(err) }()

	rows, err := s.SeasonStandings(ctx)
	if err != nil {
		return nil, err
	}

	workbook, err := buildSeasonWorkbook(rows)
	if err != nil {
		return nil, fmt.Errorf("ExportSeasonXLSX: %w", err)
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if err = workbook.Write(&buf); err != nil {
		return nil, fmt.Errorf("ExportSeasonXLSX: failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func buildSeasonWorkbook(rows []archivedomain.SeasonRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", seasonSheet); err != nil {
		return nil, err
	}

	headers := []string{"Rank", "Player", "Points", "Wins", "Losses", "Played", "Days", "Sets Won", "Sets Lost", "Set Diff"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(seasonSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []any{
			i + 1, row.Name, row.Points, row.Wins, row.Losses,
			row.Played, row.DaysPlayed, row.SetsWon, row.SetsLost, row.SetDiff(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(seasonSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
