package snapshot

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/ckhero/content-tree/tree"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Format identifies a snapshot encoding.
type Format string

const (
	FormatBinary Format = "binary"
	FormatUnixFS Format = "unixfs"
)

var (
	CodecVersion    = uint16(1)
	CodecMagicBytes = crypto.Keccak256([]byte("content-tree-snapshot-codec"))

	ErrUnknownFormat = errors.New("unknown snapshot format")
)

// ParseFormat converts the textual form of a format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatBinary, FormatUnixFS:
		return f, nil
	default:
		return "", errors.WithMessagef(ErrUnknownFormat, "%q", s)
	}
}

// Encode packs the tree rooted at root in the given format.
func Encode(root *tree.Node, format Format) ([]byte, error) {
	text, err := tree.Serialize(root)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize tree")
	}

	switch format {
	case FormatBinary:
		return encodeBinary([]byte(text))
	case FormatUnixFS:
		return encodeUnixFS([]byte(text))
	default:
		return nil, errors.WithMessagef(ErrUnknownFormat, "%q", format)
	}
}

// Decode unpacks a snapshot, detecting its format.
func Decode(data []byte) (*tree.Node, Format, error) {
	var (
		format = FormatUnixFS
		text   []byte
		err    error
	)

	if bytes.HasPrefix(data, CodecMagicBytes) {
		format = FormatBinary
		text, err = decodeBinary(data)
	} else {
		text, err = decodeUnixFS(data)
	}

	if err != nil {
		return nil, "", err
	}

	root, err := tree.Deserialize(string(text))
	if err != nil {
		return nil, "", errors.WithMessage(err, "invalid snapshot payload")
	}

	return root, format, nil
}

// encodeBinary lays out MagicBytes + CodecVersion (2 bytes) + Payload Length (4 bytes) + Payload.
func encodeBinary(payload []byte) ([]byte, error) {
	if len(payload) > math.MaxUint32 {
		return nil, errors.New("payload too large")
	}

	data := make([]byte, len(CodecMagicBytes)+2+4+len(payload))
	offset := 0

	copy(data[offset:], CodecMagicBytes)
	offset += len(CodecMagicBytes)

	binary.BigEndian.PutUint16(data[offset:], CodecVersion)
	offset += 2

	binary.BigEndian.PutUint32(data[offset:], uint32(len(payload)))
	offset += 4

	copy(data[offset:], payload)

	return data, nil
}

func decodeBinary(data []byte) ([]byte, error) {
	offset := int64(0)
	datalen := int64(len(data))

	// Verify magic bytes
	if datalen < offset+int64(len(CodecMagicBytes)) {
		return nil, errors.New("not enough data to read magic bytes")
	}
	if !bytes.Equal(data[:len(CodecMagicBytes)], CodecMagicBytes) {
		return nil, errors.New("invalid magic bytes")
	}
	offset += int64(len(CodecMagicBytes))

	// Verify codec version
	if datalen < offset+2 {
		return nil, errors.New("not enough data to read codec version")
	}
	version := binary.BigEndian.Uint16(data[offset : offset+2])
	if version != CodecVersion {
		return nil, errors.Errorf("unsupported codec version: got %d, expected %d", version, CodecVersion)
	}
	offset += 2

	// Read payload length
	if datalen < offset+4 {
		return nil, errors.New("not enough data to read payload length")
	}
	length := int64(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if datalen != offset+length {
		return nil, errors.Errorf("payload length mismatch: got %d, expected %d", datalen-offset, length)
	}

	return data[offset:], nil
}
