// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/store"
	"github.com/MKhiriev/go-ledger-desk/internal/validators"
	"github.com/MKhiriev/go-ledger-desk/models"
)

type ledgerService struct {
	adapter   adapter.ServerAdapter
	journal   store.TransferJournal
	validator validators.Validator
	now       func() time.Time

	mu         sync.Mutex
	credential string
	loggedIn   bool
	// direct is the session reused by pipelined transfers.
	direct     *adapter.Session

	logger *logger.Logger
}

// NewLedgerService wires the desk operations to serverAdapter and journal.
func NewLedgerService(serverAdapter adapter.ServerAdapter, journal store.TransferJournal, policy config.ClientPolicy, logger *logger.Logger) LedgerService {
	return &ledgerService{
		adapter:   serverAdapter,
		journal:   journal,
		validator: validators.NewTransferValidator(policy),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *ledgerService) Login(ctx context.Context, password string) error {
	result, err := s.adapter.CheckCredentials(ctx, password)
	if err != nil {
		s.logger.Err(err).Str("func", "*ledgerService.Login").Msg("handshake failed")
		return mapAdapterError(err)
	}
	if result != adapter.AuthOK {
		return ErrWrongPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropDirectLocked()
	s.credential = password
	s.loggedIn = true

	s.logger.Info().
		Str("func", "*ledgerService.Login").
		Str("region", models.RegionName(s.Region())).
		Msg("logged in")
	return nil
}

func (s *ledgerService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropDirectLocked()
	s.credential = ""
	s.loggedIn = false
}

func (s *ledgerService) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *ledgerService) Region() int32 {
	return int32(s.adapter.Region())
}

func (s *ledgerService) Opener() (SessionOpener, error) {
	credential, err := s.currentCredential()
	if err != nil {
		return nil, err
	}
	return NewSessionOpener(s.adapter, credential), nil
}

func (s *ledgerService) Balance(ctx context.Context) (int32, error) {
	credential, err := s.currentCredential()
	if err != nil {
		return 0, err
	}

	balance, err := s.adapter.QueryBalance(ctx, credential)
	if err != nil {
		return 0, mapAdapterError(err)
	}
	return balance, nil
}

func (s *ledgerService) Transfer(ctx context.Context, req models.TransferRequest, mode models.TransferMode) (models.TransferRecord, error) {
	if err := s.validator.Validate(ctx, mode); err != nil {
		return models.TransferRecord{}, err
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.TransferRecord{}, err
	}

	credential, err := s.currentCredential()
	if err != nil {
		return models.TransferRecord{}, err
	}

	switch mode {
	case models.TransferPipelined:
		err = s.sendPipelined(ctx, credential, req)
	default:
		err = s.adapter.Transfer(ctx, credential, req)
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "*ledgerService.Transfer").
			Str("mode", string(mode)).
			Msg("transfer failed")
		return models.TransferRecord{}, mapAdapterError(err)
	}

	record := models.NewTransferRecord(s.Region(), req, mode, s.now())
	s.record(ctx, record)
	return record, nil
}

func (s *ledgerService) Burst(ctx context.Context, req models.TransferRequest, count int, rps float64) ([]models.TransferRecord, error) {
	burst := models.BurstRequest{Transfer: req, Count: count, RPS: rps}
	if err := s.validator.Validate(ctx, burst); err != nil {
		return nil, err
	}

	credential, err := s.currentCredential()
	if err != nil {
		return nil, err
	}

	session, result, err := s.adapter.OpenSession(ctx, credential)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	if result != adapter.AuthOK {
		return nil, ErrWrongPassword
	}
	defer session.Close()

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	records := make([]models.TransferRecord, 0, count)
	for i := 0; i < count; i++ {
		if limiter != nil {
			if err = limiter.Wait(ctx); err != nil {
				break
			}
		}
		if err = session.Transfer(ctx, req); err != nil {
			err = mapAdapterError(err)
			break
		}
		records = append(records, models.NewTransferRecord(s.Region(), req, models.TransferPipelined, s.now()))
	}

	s.record(ctx, records...)

	s.logger.Info().
		Str("func", "*ledgerService.Burst").
		Int("requested", count).
		Int("sent", len(records)).
		Float64("rps", rps).
		Msg("burst finished")

	return records, err
}

func (s *ledgerService) History(ctx context.Context, limit int) ([]models.TransferRecord, error) {
	return s.journal.Recent(ctx, limit)
}

func (s *ledgerService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropDirectLocked()
	return nil
}

// sendPipelined writes req on the kept session, opening it on first use or
// after a failure. A failed session is dropped so the next call reopens.
func (s *ledgerService) sendPipelined(ctx context.Context, credential string, req models.TransferRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.direct == nil || s.direct.State() != adapter.StateAuthenticated {
		s.dropDirectLocked()
		session, result, err := s.adapter.OpenSession(ctx, credential)
		if err != nil {
			return err
		}
		if result != adapter.AuthOK {
			return adapter.ErrAuthRejected
		}
		s.direct = session
	}

	if err := s.direct.Transfer(ctx, req); err != nil {
		s.dropDirectLocked()
		return err
	}
	return nil
}

func (s *ledgerService) dropDirectLocked() {
	if s.direct != nil {
		_ = s.direct.Close()
		s.direct = nil
	}
}

func (s *ledgerService) currentCredential() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loggedIn {
		return "", ErrNotLoggedIn
	}
	return s.credential, nil
}

// record journals records. The frames are already on the wire, so a journal
// failure is logged and never reported to the caller.
func (s *ledgerService) record(ctx context.Context, records ...models.TransferRecord) {
	if len(records) == 0 {
		return
	}
	if err := s.journal.Save(context.WithoutCancel(ctx), records...); err != nil {
		s.logger.Err(err).
			Str("func", "*ledgerService.record").
			Int("records", len(records)).
			Msg("failed to journal transfers")
	}
}
