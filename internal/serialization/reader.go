package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
)

// ReadSafeTensors loads every tensor of the file at path onto device.
func ReadSafeTensors(path string, device tensor.Device) (map[string]*tensor.RawTensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(bufio.NewReader(file), device)
}

// Decode reads a SafeTensors stream. Only F32 tensors are supported.
func Decode(r io.Reader, device tensor.Device) (map[string]*tensor.RawTensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "header size %d", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header JSON")
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateHeader(&header, int64(len(payload))); err != nil {
		return nil, nil, err
	}

	stateDict := make(map[string]*tensor.RawTensor, len(header.Tensors))
	for name, info := range header.Tensors {
		raw, err := tensor.NewRaw(tensor.Shape(info.Shape), device)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "invalid shape for tensor %s", name)
		}
		chunk := payload[info.DataOffsets[0]:info.DataOffsets[1]]
		if err := binary.Read(bytes.NewReader(chunk), binary.LittleEndian, raw.Data()); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to decode tensor %s", name)
		}
		stateDict[name] = raw
	}
	return stateDict, header.Metadata, nil
}
