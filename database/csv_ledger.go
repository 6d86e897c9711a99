package database

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sportzone-booking/errors"
	"sportzone-booking/model"
)

// CSVLedger keeps bookings in a comma separated file with a header row.
// The file is opened and closed within every call.
type CSVLedger struct {
	path           string
	currencySymbol string
	location       *time.Location
	logger         logrus.FieldLogger
}

func NewCSVLedger(path string, currencySymbol string, logger logrus.FieldLogger) *CSVLedger {
	return &CSVLedger{
		path:           path,
		currencySymbol: currencySymbol,
		location:       time.Local,
		logger:         logger.WithField("ledger", path),
	}
}

func (l *CSVLedger) Path() string {
	return l.path
}

func (l *CSVLedger) Append(_ context.Context, record model.BookingRecord) (err error) {
	file, err := os.OpenFile(l.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("%w: open ledger: %w", errors.ErrPersistence, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: close ledger: %w", errors.ErrPersistence, closeErr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat ledger: %w", errors.ErrPersistence, err)
	}

	columns := model.LedgerColumns()
	newFile := info.Size() == 0
	if !newFile {
		header, err := csv.NewReader(file).Read()
		if err != nil {
			return fmt.Errorf("%w: read ledger header: %w", errors.ErrPersistence, err)
		}
		if !sameColumns(header, columns) {
			return fmt.Errorf("%w: ledger header %v does not match %v", errors.ErrPersistence, header, columns)
		}
	}

	// header and row go out in a single write
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if newFile {
		if err := writer.Write(columns); err != nil {
			return fmt.Errorf("%w: encode header: %w", errors.ErrPersistence, err)
		}
	}
	if err := writer.Write(record.Row(l.currencySymbol)); err != nil {
		return fmt.Errorf("%w: encode booking: %w", errors.ErrPersistence, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: encode booking: %w", errors.ErrPersistence, err)
	}

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: write ledger: %w", errors.ErrPersistence, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: sync ledger: %w", errors.ErrPersistence, err)
	}

	l.logger.WithFields(logrus.Fields{
		"match":      record.Match,
		"new_ledger": newFile,
	}).Info("booking appended")
	return nil
}

func (l *CSVLedger) ListAll(_ context.Context) (Listing, error) {
	file, err := os.Open(l.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("ledger file not found, treating as empty")
		return Listing{Absent: true}, nil
	} else if err != nil {
		return Listing{}, fmt.Errorf("%w: open ledger: %w", errors.ErrPersistence, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return Listing{Records: []model.BookingRecord{}}, nil
	} else if err != nil {
		return Listing{}, fmt.Errorf("%w: read ledger header: %w", errors.ErrPersistence, err)
	}
	if !sameColumns(header, model.LedgerColumns()) {
		return Listing{}, fmt.Errorf("%w: unexpected ledger header %v", errors.ErrPersistence, header)
	}

	records := []model.BookingRecord{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return Listing{}, fmt.Errorf("%w: read ledger: %w", errors.ErrPersistence, err)
		}

		line, _ := reader.FieldPos(0)
		record, err := l.decode(row)
		if err != nil {
			return Listing{}, fmt.Errorf("%w: line %d: %w", errors.ErrPersistence, line, err)
		}
		records = append(records, record)
	}

	return Listing{Records: records}, nil
}

func (l *CSVLedger) decode(row []string) (model.BookingRecord, error) {
	createdAt, err := time.ParseInLocation(model.TimestampLayout, row[0], l.location)
	if err != nil {
		return model.BookingRecord{}, fmt.Errorf("date %q: %w", row[0], err)
	}

	categories := model.Categories()
	quantities := make(model.Quantities, len(categories))
	for i, category := range categories {
		raw := row[6+i]
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return model.BookingRecord{}, fmt.Errorf("%s count %q: %w", category, raw, err)
		}
		quantities[category] = qty
	}

	rawTotal := row[6+len(categories)]
	total, err := decimal.NewFromString(strings.TrimPrefix(rawTotal, l.currencySymbol))
	if err != nil {
		return model.BookingRecord{}, fmt.Errorf("total %q: %w", rawTotal, err)
	}

	return model.BookingRecord{
		CreatedAt:     createdAt,
		CustomerName:  row[1],
		ContactNumber: row[2],
		Match:         row[3],
		MatchDate:     row[4],
		Tier:          model.Tier(row[5]),
		Quantities:    quantities,
		TotalCharged:  total,
	}, nil
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
