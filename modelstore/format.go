package modelstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// magicNumber identifies clustergo model files (ASCII: "CGM1").
	magicNumber = 0x43474D31
	// formatVersion is the current envelope version.
	formatVersion = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported format version")
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// crc32Table is the IEEE polynomial table. CRC32 detects accidental
// corruption only and is not a tamper seal.
var crc32Table = crc32.MakeTable(crc32.IEEE)

// envelope is the decoded header plus payload of a model artifact.
type envelope struct {
	codecName       string
	compressionName string
	payload         []byte
}

// encodeEnvelope assembles the self-describing artifact bytes.
func encodeEnvelope(e envelope) ([]byte, error) {
	var buf bytes.Buffer

	for _, v := range []any{
		uint32(magicNumber),
		uint32(formatVersion),
	} {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}
	if err := writeString(&buf, e.codecName); err != nil {
		return nil, err
	}
	if err := writeString(&buf, e.compressionName); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, crc32.Checksum(e.payload, crc32Table)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, uint64(len(e.payload))); err != nil {
		return nil, err
	}
	buf.Write(e.payload)

	return buf.Bytes(), nil
}

// decodeEnvelope parses and verifies artifact bytes.
func decodeEnvelope(data []byte) (envelope, error) {
	r := bytes.NewReader(data)

	var magic, version uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return envelope{}, fmt.Errorf("read magic: %w", err)
	}
	if magic != magicNumber {
		return envelope{}, ErrInvalidMagic
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return envelope{}, fmt.Errorf("read version: %w", err)
	}
	if version != formatVersion {
		return envelope{}, ErrInvalidVersion
	}

	codecName, err := readString(r)
	if err != nil {
		return envelope{}, fmt.Errorf("read codec name: %w", err)
	}
	compressionName, err := readString(r)
	if err != nil {
		return envelope{}, fmt.Errorf("read compression name: %w", err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return envelope{}, fmt.Errorf("read checksum: %w", err)
	}
	var payloadLen uint64
	if err := binary.Read(r, binary.BigEndian, &payloadLen); err != nil {
		return envelope{}, fmt.Errorf("read payload length: %w", err)
	}
	if uint64(r.Len()) != payloadLen {
		return envelope{}, fmt.Errorf("payload truncated: want %d bytes, have %d", payloadLen, r.Len())
	}

	payload := make([]byte, payloadLen)
	if _, err := r.Read(payload); err != nil {
		return envelope{}, fmt.Errorf("read payload: %w", err)
	}
	if crc32.Checksum(payload, crc32Table) != checksum {
		return envelope{}, ErrChecksumMismatch
	}

	return envelope{
		codecName:       codecName,
		compressionName: compressionName,
		payload:         payload,
	}, nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

func readString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return "", err
	}
	return string(b), nil
}
