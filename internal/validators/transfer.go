package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldAmount = "amount"
	FieldCount  = "count"
	FieldRate   = "rps"
)

// TransferValidator checks transfer requests against the client policy.
type TransferValidator struct {
	rejectNegative bool
}

func NewTransferValidator(policy config.ClientPolicy) Validator {
	return &TransferValidator{rejectNegative: policy.RejectNegative}
}

func (v *TransferValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TransferRequest:
		return v.validateTransfer(value, fields...)
	case *models.TransferRequest:
		return v.validateTransfer(*value, fields...)

	case models.BurstRequest:
		return v.validateBurst(value, fields...)
	case *models.BurstRequest:
		return v.validateBurst(*value, fields...)

	case models.TransferMode:
		if !value.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidTransferMode, value)
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *TransferValidator) validateTransfer(req models.TransferRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAmount}
	}

	for _, f := range fields {
		switch f {
		case FieldAmount:
			if v.rejectNegative && req.Amount < 0 {
				return fmt.Errorf("%w: %d", ErrNegativeAmount, req.Amount)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TransferValidator) validateBurst(req models.BurstRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCount, FieldRate, FieldAmount}
	}

	for _, f := range fields {
		switch f {
		case FieldCount:
			if req.Count <= 0 {
				return fmt.Errorf("%w: %d", ErrInvalidBurstCount, req.Count)
			}
		case FieldRate:
			if req.RPS < 0 {
				return fmt.Errorf("%w: %g", ErrInvalidBurstRate, req.RPS)
			}
		case FieldAmount:
			if err := v.validateTransfer(req.Transfer, FieldAmount); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
