// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
)

var ErrUserQuit = errors.New("user quit")

func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrServerUnavailable):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный пароль"
	case errors.Is(err, service.ErrUnexpectedReply):
		return "Сервер ответил не по протоколу"
	case errors.Is(err, service.ErrNegativeAmount):
		return "Отрицательные суммы запрещены политикой"
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Сессия завершена, войдите снова"
	}
	return err.Error()
}
