// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
)

const transfersTable = "transfers"

var transferColumns = []string{"id", "sender", "recipient", "amount", "mode", "sent_at"}

// saveBatchSize keeps one INSERT well under SQLite's bound variable limit
// (32766 since 3.32, 999 before) at six variables per row.
const saveBatchSize = 150

// transferRepository is the SQLite-backed implementation of
// [TransferJournal]. Timestamps are stored as Unix nanoseconds.
type transferRepository struct {
	db     *DB
	logger *logger.Logger

	// batchSize overrides saveBatchSize when positive.
	batchSize int
}

// NewTransferRepository constructs a [TransferJournal] on top of db.
func NewTransferRepository(db *DB, logger *logger.Logger) TransferJournal {
	logger.Debug().Msg("creating transfer repository")
	return &transferRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transferRepository) Save(ctx context.Context, records ...models.TransferRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "*transferRepository.Save").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for chunk := range slices.Chunk(records, r.chunkSize()) {
		stmt, args, err := insertTransfers(chunk).ToSql()
		if err != nil {
			r.logger.Err(err).Str("func", "*transferRepository.Save").Msg("error building insert")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			r.logger.Err(err).Str("func", "*transferRepository.Save").Int("records", len(chunk)).Msg("error inserting transfers")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if affected, err := res.RowsAffected(); err == nil && affected != int64(len(chunk)) {
			return fmt.Errorf("%w: %d of %d", ErrTransfersNotSaved, affected, len(chunk))
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "*transferRepository.Save").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *transferRepository) chunkSize() int {
	if r.batchSize > 0 {
		return r.batchSize
	}
	return saveBatchSize
}

func insertTransfers(records []models.TransferRecord) sq.InsertBuilder {
	query := sq.Insert(transfersTable).
		Columns(transferColumns...).
		PlaceholderFormat(sq.Question)
	for _, rec := range records {
		query = query.Values(rec.ID, rec.Sender, rec.Recipient, rec.Amount, string(rec.Mode), rec.SentAt.UnixNano())
	}
	return query
}

func (r *transferRepository) Recent(ctx context.Context, limit int) ([]models.TransferRecord, error) {
	if limit <= 0 {
		return []models.TransferRecord{}, nil
	}

	stmt, args, err := sq.Select(transferColumns...).
		From(transfersTable).
		OrderBy("sent_at DESC", "rowid DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*transferRepository.Recent").Msg("error querying transfers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.TransferRecord, 0, limit)
	for rows.Next() {
		var (
			rec    models.TransferRecord
			mode   string
			sentAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sender, &rec.Recipient, &rec.Amount, &mode, &sentAt); err != nil {
			r.logger.Err(err).Str("func", "*transferRepository.Recent").Msg("error scanning transfer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec.Mode = models.TransferMode(mode)
		rec.SentAt = time.Unix(0, sentAt).UTC()
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *transferRepository) Count(ctx context.Context) (int64, error) {
	stmt, args, err := sq.Select("COUNT(*)").From(transfersTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		r.logger.Err(err).Str("func", "*transferRepository.Count").Msg("error counting transfers")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}
