package snapshot_test

import (
	"encoding/binary"
	"testing"

	"github.com/ckhero/content-tree/snapshot"
	"github.com/ckhero/content-tree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleTree = tree.NewRoot(
	tree.NewDirectory("guides",
		tree.NewDocument("setup.html", "<p>setup</p>"),
		tree.NewDirectory("empty"),
	),
	tree.NewDocument("index.html", ""),
	tree.NewDocument("about.html", `<a href="/x">"quoted" & <b>bold</b></a>`),
)

func TestRoundTrip(t *testing.T) {
	for _, format := range []snapshot.Format{snapshot.FormatBinary, snapshot.FormatUnixFS} {
		t.Run(string(format), func(t *testing.T) {
			data, err := snapshot.Encode(exampleTree, format)
			require.NoError(t, err)

			root, detected, err := snapshot.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, format, detected)
			assert.True(t, exampleTree.Equal(root))
			assert.Equal(t, []string{"guides", "index.html", "about.html"}, root.Names())
		})
	}
}

func TestParseFormat(t *testing.T) {
	format, err := snapshot.ParseFormat(" UnixFS ")
	assert.NoError(t, err)
	assert.Equal(t, snapshot.FormatUnixFS, format)

	_, err = snapshot.ParseFormat("zip")
	assert.ErrorIs(t, err, snapshot.ErrUnknownFormat)

	_, err = snapshot.Encode(exampleTree, snapshot.Format("zip"))
	assert.ErrorIs(t, err, snapshot.ErrUnknownFormat)
}

func TestDecodeBinaryErrors(t *testing.T) {
	data, err := snapshot.Encode(exampleTree, snapshot.FormatBinary)
	require.NoError(t, err)

	magicLen := len(snapshot.CodecMagicBytes)

	badVersion := append([]byte{}, data...)
	binary.BigEndian.PutUint16(badVersion[magicLen:], snapshot.CodecVersion+1)

	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"Missing Version", data[:magicLen+1], "not enough data to read codec version"},
		{"Missing Length", data[:magicLen+3], "not enough data to read payload length"},
		{"Bad Version", badVersion, "unsupported codec version: got 2, expected 1"},
		{"Truncated Payload", data[:len(data)-1], "payload length mismatch"},
		{"Trailing Data", append(append([]byte{}, data...), 0), "payload length mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := snapshot.Decode(tt.data)
			assert.ErrorContains(t, err, tt.expected)
		})
	}
}

func TestDecodeInvalidPayload(t *testing.T) {
	payload := []byte(`{"a": [1]}`)
	data := append([]byte{}, snapshot.CodecMagicBytes...)
	data = binary.BigEndian.AppendUint16(data, snapshot.CodecVersion)
	data = binary.BigEndian.AppendUint32(data, uint32(len(payload)))
	data = append(data, payload...)

	_, _, err := snapshot.Decode(data)
	assert.True(t, tree.IsParseError(err))
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := snapshot.Decode([]byte("definitely not a snapshot"))
	assert.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := snapshot.Encode(exampleTree, snapshot.FormatBinary); err != nil {
			b.Fatalf("Error encoding snapshot: %v", err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data, err := snapshot.Encode(exampleTree, snapshot.FormatBinary)
	if err != nil {
		b.Fatalf("Error encoding snapshot for decoding benchmark: %v", err)
	}

	for i := 0; i < b.N; i++ {
		if _, _, err := snapshot.Decode(data); err != nil {
			b.Fatalf("Error decoding snapshot: %v", err)
		}
	}
}
