// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the status address
// is empty and therefore no transport handler is initialized.
var errNoHandlersAreCreated = errors.New("no handlers are created")
