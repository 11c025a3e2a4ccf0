// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package protocol implements the ledger wire format.
//
// Every request starts with a one-byte opcode followed by a fixed or
// length-prefixed payload. All multi-byte integers are little-endian:
//
//	0x00 Authenticate  [u8 region] [u32 credential length] [credential]
//	                   reply: 1 byte, 0x01 on success
//	0x01 QueryBalance  no payload
//	                   reply: i32 balance
//	0x02 Transfer      [i32 sender] [i32 recipient] [i32 amount]
//	                   no reply
//
// The region id is one byte wide in the handshake but four bytes wide in a
// transfer frame. Both widths are part of the contract and are kept as-is.
//
// The package is symmetric: the Append* functions build client frames and
// ReadRequest parses them back, which is what the in-process fake ledger and
// the codec tests rely on.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Opcode identifies a request type.
type Opcode byte

const (
	OpAuthenticate Opcode = 0x00
	OpQueryBalance Opcode = 0x01
	OpTransfer     Opcode = 0x02
)

func (o Opcode) String() string {
	switch o {
	case OpAuthenticate:
		return "authenticate"
	case OpQueryBalance:
		return "query_balance"
	case OpTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("opcode(0x%02x)", byte(o))
	}
}

// AuthAccepted is the only handshake reply byte that means success.
const AuthAccepted byte = 0x01

// AuthDenied is the reply byte the ledger uses for bad credentials. Any
// byte other than AuthAccepted is treated the same way.
const AuthDenied byte = 0x00

const (
	// AuthReplyLength is the size of the handshake reply.
	AuthReplyLength = 1

	// BalanceReplyLength is the size of the QueryBalance reply.
	BalanceReplyLength = 4

	// TransferFrameLength is the full size of a transfer frame, opcode
	// included.
	TransferFrameLength = 1 + 3*4

	// handshakeHeaderLength covers opcode, region and credential length.
	handshakeHeaderLength = 1 + 1 + 4
)

// MaxCredentialLength caps the credential length on both sides: AppendHandshake
// refuses to encode a longer one and ReadRequest refuses to decode it. The
// wire allows up to 4 GiB; nothing legitimate comes close to this.
const MaxCredentialLength = 64 * 1024

var (
	// ErrUnknownOpcode is returned by ReadRequest for an opcode outside the
	// three known request types.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrCredentialTooLong is returned when a credential exceeds the frame
	// limits.
	ErrCredentialTooLong = errors.New("credential too long")
)

// AppendHandshake appends an Authenticate frame to dst.
func AppendHandshake(dst []byte, region uint8, credential string) ([]byte, error) {
	if len(credential) > MaxCredentialLength {
		return dst, fmt.Errorf("%w: %d bytes", ErrCredentialTooLong, len(credential))
	}
	dst = append(dst, byte(OpAuthenticate), region)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(credential)))
	dst = append(dst, credential...)
	return dst, nil
}

// AppendBalanceQuery appends a QueryBalance frame to dst.
func AppendBalanceQuery(dst []byte) []byte {
	return append(dst, byte(OpQueryBalance))
}

// AppendTransfer appends a Transfer frame to dst. sender is the session's
// region widened to 32 bits.
func AppendTransfer(dst []byte, sender, recipient, amount int32) []byte {
	dst = append(dst, byte(OpTransfer))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(sender))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(recipient))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(amount))
	return dst
}

// DecodeBalance decodes a QueryBalance reply.
func DecodeBalance(reply [BalanceReplyLength]byte) int32 {
	return int32(binary.LittleEndian.Uint32(reply[:]))
}

// EncodeBalance encodes v as a QueryBalance reply.
func EncodeBalance(v int32) [BalanceReplyLength]byte {
	var out [BalanceReplyLength]byte
	binary.LittleEndian.PutUint32(out[:], uint32(v))
	return out
}

// Request is a decoded client frame. Only the fields of the matching opcode
// are set.
type Request struct {
	Op Opcode

	// Authenticate
	Region     uint8
	Credential string

	// Transfer
	Sender    int32
	Recipient int32
	Amount    int32
}

// ReadRequest reads exactly one client frame from r. It returns io.EOF only
// when r ends cleanly before the first byte of a frame.
func ReadRequest(r io.Reader) (Request, error) {
	var op [1]byte
	if _, err := io.ReadFull(r, op[:]); err != nil {
		return Request{}, err
	}

	req := Request{Op: Opcode(op[0])}
	switch req.Op {
	case OpAuthenticate:
		var header [handshakeHeaderLength - 1]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return Request{}, fmt.Errorf("read handshake header: %w", unexpected(err))
		}
		req.Region = header[0]
		length := binary.LittleEndian.Uint32(header[1:])
		if length > MaxCredentialLength {
			return Request{}, fmt.Errorf("%w: %d bytes", ErrCredentialTooLong, length)
		}
		credential := make([]byte, length)
		if _, err := io.ReadFull(r, credential); err != nil {
			return Request{}, fmt.Errorf("read credential: %w", unexpected(err))
		}
		req.Credential = string(credential)
	case OpQueryBalance:
	case OpTransfer:
		var body [TransferFrameLength - 1]byte
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return Request{}, fmt.Errorf("read transfer body: %w", unexpected(err))
		}
		req.Sender = int32(binary.LittleEndian.Uint32(body[0:4]))
		req.Recipient = int32(binary.LittleEndian.Uint32(body[4:8]))
		req.Amount = int32(binary.LittleEndian.Uint32(body[8:12]))
	default:
		return Request{}, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, op[0])
	}

	return req, nil
}

// unexpected turns a clean EOF inside a frame into io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
