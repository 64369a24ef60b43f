package asset

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

// Account layout as served by the registry:
//
//	[0]      account key, must be KeyAssetV1
//	[1:5]    owner length, little-endian uint32
//	[5:5+n]  owner principal id, UTF-8
//	[5+n:]   registry-specific tail, ignored
const (
	KeyAssetV1     byte = 1
	headerLen           = 5
	MaxOwnerLength      = 128
)

var ErrMalformedAssetData = errors.New("malformed asset account data")

// DecodeOwner extracts the current owner from raw account data. Any layout
// violation is an error; there is no fallback owner.
func DecodeOwner(data []byte) (string, error) {
	if len(data) < headerLen {
		return "", ErrMalformedAssetData
	}
	if data[0] != KeyAssetV1 {
		return "", ErrMalformedAssetData
	}
	n := binary.LittleEndian.Uint32(data[1:headerLen])
	if n == 0 || n > MaxOwnerLength {
		return "", ErrMalformedAssetData
	}
	end := headerLen + int(n)
	if len(data) < end {
		return "", ErrMalformedAssetData
	}
	owner := data[headerLen:end]
	if !utf8.Valid(owner) {
		return "", ErrMalformedAssetData
	}
	return string(owner), nil
}

// EncodeAccount builds account data in the registry layout. Used by the
// in-memory oracle and tests.
func EncodeAccount(owner string, tail []byte) []byte {
	out := make([]byte, headerLen, headerLen+len(owner)+len(tail))
	out[0] = KeyAssetV1
	binary.LittleEndian.PutUint32(out[1:headerLen], uint32(len(owner)))
	out = append(out, owner...)
	return append(out, tail...)
}
