// Package export writes a user's intake history to object storage as CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hydrate-app/hydrate/internal/models"
)

const (
	contentType = "text/csv"
	fileName    = "intake.csv"
)

// IntakeLister lists every intake row of a user, oldest first.
type IntakeLister interface {
	ListIntake(ctx context.Context, userID int64) ([]models.WaterIntake, error)
}

// FileStore defines the interface for file storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType, filename string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

type Service struct {
	intake IntakeLister
	files  FileStore
}

func NewService(intake IntakeLister, files FileStore) *Service {
	return &Service{intake: intake, files: files}
}

// ObjectKey is where the export of userID is stored.
func ObjectKey(userID int64) string {
	return fmt.Sprintf("%d/%s", userID, fileName)
}

// Render encodes rows as "date,amount" CSV with a header line.
func Render(rows []models.WaterIntake) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write([]string{"date", "amount"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		rec := []string{models.DayKey(row.Date), strconv.FormatFloat(row.Amount, 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// Create renders the full history of userID and uploads it, replacing any
// earlier export. It returns the number of days written.
func (s *Service) Create(ctx context.Context, userID int64) (int, error) {
	rows, err := s.intake.ListIntake(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	data, err := Render(rows)
	if err != nil {
		return 0, fmt.Errorf("export render: %w", err)
	}
	if err := s.files.Upload(ctx, ObjectKey(userID), data, contentType, fileName); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Fetch returns the latest export of userID.
func (s *Service) Fetch(ctx context.Context, userID int64) ([]byte, error) {
	data, _, err := s.files.Download(ctx, ObjectKey(userID))
	return data, err
}
