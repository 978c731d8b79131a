package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/born-ml/keras/internal/tensor"
	"github.com/pkg/errors"
)

// FrameworkName is recorded in the "framework" metadata entry of written files.
const FrameworkName = "born-keras"

// WriteSafeTensors writes stateDict to path. metadata may be nil; the
// "framework" entry is always set.
func WriteSafeTensors(path string, stateDict map[string]*tensor.RawTensor, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	w := bufio.NewWriter(file)
	if err := Encode(w, stateDict, metadata); err != nil {
		_ = file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "failed to flush file")
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// Encode writes stateDict in SafeTensors format to w.
//
// Tensors are written in alphabetical order by name.
func Encode(w io.Writer, stateDict map[string]*tensor.RawTensor, metadata map[string]string) error {
	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	meta := map[string]string{"framework": FrameworkName}
	for k, v := range metadata {
		meta[k] = v
	}
	header := map[string]any{metadataKey: meta}

	var offset int64
	for _, name := range names {
		raw := stateDict[name]
		size := int64(raw.NumElements() * bytesPerF32)
		header[name] = TensorInfo{
			DType:       dtypeF32,
			Shape:       append([]int{}, raw.Shape()...),
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, name := range names {
		if err := binary.Write(w, binary.LittleEndian, stateDict[name].Data()); err != nil {
			return errors.Wrapf(err, "failed to write tensor %s", name)
		}
	}
	return nil
}
