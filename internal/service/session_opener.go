package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
)

type credentialOpener struct {
	adapter    adapter.ServerAdapter
	credential string
}

// NewSessionOpener returns a SessionOpener that authenticates with
// credential on every call.
func NewSessionOpener(serverAdapter adapter.ServerAdapter, credential string) SessionOpener {
	return &credentialOpener{adapter: serverAdapter, credential: credential}
}

func (o *credentialOpener) OpenSession(ctx context.Context) (*adapter.Session, error) {
	session, result, err := o.adapter.OpenSession(ctx, o.credential)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	if result != adapter.AuthOK {
		return nil, ErrWrongPassword
	}
	return session, nil
}
