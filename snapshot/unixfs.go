package snapshot

import (
	"github.com/ipfs/go-unixfsnode/data"
	"github.com/ipfs/go-unixfsnode/data/builder"
	"github.com/pkg/errors"
)

func encodeUnixFS(payload []byte) ([]byte, error) {
	ufs, err := builder.BuildUnixFS(func(b *builder.Builder) {
		builder.DataType(b, data.Data_Raw)
		builder.Data(b, payload)
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to build UnixFS node")
	}

	return data.EncodeUnixFSData(ufs), nil
}

func decodeUnixFS(b []byte) ([]byte, error) {
	ufs, err := data.DecodeUnixFSData(b)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode UnixFS data")
	}

	if ufs.FieldDataType().Int() != data.Data_Raw {
		return nil, errors.New("unexpected data type, expected raw data")
	}

	if !ufs.FieldData().Exists() {
		return nil, errors.New("UnixFS node carries no data")
	}

	return ufs.FieldData().Must().Bytes(), nil
}
