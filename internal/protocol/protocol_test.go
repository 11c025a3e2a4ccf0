// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package protocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendHandshake_Layout(t *testing.T) {
	frame, err := AppendHandshake(nil, 2, "bluecircle123")
	require.NoError(t, err)

	require.Len(t, frame, 6+len("bluecircle123"))
	assert.Equal(t, byte(0x00), frame[0])
	assert.Equal(t, byte(2), frame[1])
	assert.Equal(t, uint32(13), binary.LittleEndian.Uint32(frame[2:6]))
	assert.Equal(t, "bluecircle123", string(frame[6:]))
}

func TestAppendHandshake_CredentialLimit(t *testing.T) {
	frame, err := AppendHandshake(nil, 0, strings.Repeat("a", MaxCredentialLength))
	require.NoError(t, err)
	assert.Len(t, frame, 6+MaxCredentialLength)

	prefix := []byte{0xAA}
	out, err := AppendHandshake(prefix, 0, strings.Repeat("a", MaxCredentialLength+1))
	assert.ErrorIs(t, err, ErrCredentialTooLong)
	assert.Equal(t, prefix, out, "dst is returned untouched")
}

func TestHandshake_RoundTrip(t *testing.T) {
	credentials := []string{"", "x", "bluecircle123", "пароль", strings.Repeat("z", 4096), "with\x00nul"}

	for region := 0; region <= 255; region++ {
		for _, cred := range credentials {
			frame, err := AppendHandshake(nil, uint8(region), cred)
			require.NoError(t, err)

			req, err := ReadRequest(bytes.NewReader(frame))
			require.NoError(t, err)
			require.Equal(t, OpAuthenticate, req.Op)
			require.Equal(t, uint8(region), req.Region)
			require.Equal(t, cred, req.Credential)
		}
	}
}

func TestAppendBalanceQuery(t *testing.T) {
	assert.Equal(t, []byte{0x01}, AppendBalanceQuery(nil))
}

func TestAppendTransfer_Layout(t *testing.T) {
	frame := AppendTransfer(nil, 0, 1, 85)

	want := []byte{
		0x02,
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x55, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, frame)
	assert.Len(t, frame, TransferFrameLength)
}

func TestTransfer_RoundTripSigned(t *testing.T) {
	cases := []struct{ sender, recipient, amount int32 }{
		{0, 1, 85},
		{-1, math.MaxInt32, math.MinInt32},
		{255, 256, -85},
	}

	for _, tc := range cases {
		frame := AppendTransfer(nil, tc.sender, tc.recipient, tc.amount)
		req, err := ReadRequest(bytes.NewReader(frame))
		require.NoError(t, err)
		assert.Equal(t, OpTransfer, req.Op)
		assert.Equal(t, tc.sender, req.Sender)
		assert.Equal(t, tc.recipient, req.Recipient)
		assert.Equal(t, tc.amount, req.Amount)
	}
}

func TestBalance_EncodeDecode(t *testing.T) {
	values := []int32{0, 1, -1, 1000, -1000, math.MaxInt32, math.MinInt32, 0x01020304}
	for _, v := range values {
		assert.Equal(t, v, DecodeBalance(EncodeBalance(v)), "value %d", v)
	}

	assert.Equal(t, [4]byte{0xFF, 0xFF, 0xFF, 0xFF}, EncodeBalance(-1))
	assert.Equal(t, [4]byte{0xE8, 0x03, 0x00, 0x00}, EncodeBalance(1000))
}

func TestReadRequest_Pipelined(t *testing.T) {
	var stream []byte
	stream, _ = AppendHandshake(stream, 0, "pw")
	stream = AppendBalanceQuery(stream)
	stream = AppendTransfer(stream, 0, 1, 10)
	stream = AppendTransfer(stream, 0, 2, 20)

	r := bytes.NewReader(stream)
	var ops []Opcode
	for {
		req, err := ReadRequest(r)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ops = append(ops, req.Op)
	}

	assert.Equal(t, []Opcode{OpAuthenticate, OpQueryBalance, OpTransfer, OpTransfer}, ops)
}

func TestReadRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"empty stream", nil, io.EOF},
		{"unknown opcode", []byte{0x07}, ErrUnknownOpcode},
		{"truncated handshake header", []byte{0x00, 0x01, 0x02}, io.ErrUnexpectedEOF},
		{"truncated credential", []byte{0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 'a'}, io.ErrUnexpectedEOF},
		{"credential over limit", []byte{0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x7F}, ErrCredentialTooLong},
		{"truncated transfer", []byte{0x02, 0x00, 0x00}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequest(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpcode_String(t *testing.T) {
	assert.Equal(t, "authenticate", OpAuthenticate.String())
	assert.Equal(t, "query_balance", OpQueryBalance.String())
	assert.Equal(t, "transfer", OpTransfer.String())
	assert.Equal(t, "opcode(0x09)", Opcode(9).String())
}
