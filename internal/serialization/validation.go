package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

type tensorSpan struct {
	name        string
	offset, end int64
}

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors map[string]TensorInfo, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
			Err:     ErrTooManyTensors,
		}
	}

	spans := make([]tensorSpan, 0, len(tensors))
	for name, info := range tensors {
		spans = append(spans, tensorSpan{name: name, offset: info.DataOffsets[0], end: info.DataOffsets[1]})
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].offset < spans[j].offset
	})

	for i, s := range spans {
		if s.offset < 0 || s.end < s.offset {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  s.name,
				Details: fmt.Sprintf("offsets [%d, %d)", s.offset, s.end),
				Err:     ErrOutOfBounds,
			}
		}
		if s.end > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  s.name,
				Details: fmt.Sprintf("end %d > data_size %d", s.end, dataSize),
				Err:     ErrOutOfBounds,
			}
		}
		if i < len(spans)-1 {
			next := spans[i+1]
			if s.end > next.offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  s.name,
					Tensor2: next.name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap", s.offset, s.end, next.offset, next.end),
					Err:     ErrOffsetOverlap,
				}
			}
		}
	}
	return nil
}

// ValidateTensorName rejects empty, oversized and path-like names.
// State dict names use dots as separators ("0.weight").
func ValidateTensorName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: details, Err: ErrInvalidTensorName}
	}
	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxTensorNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen))
	case strings.Contains(name, ".."):
		return invalid("contains '..'")
	case strings.ContainsAny(name, "/\\"):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateHeader checks every tensor of h against a data section of dataSize bytes.
func ValidateHeader(h *Header, dataSize int64) error {
	for name, info := range h.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if info.DType != dtypeF32 {
			return &ValidationError{Type: "unsupported_dtype", Tensor: name, Details: info.DType, Err: ErrUnsupportedDType}
		}
		elements := int64(1)
		for _, d := range info.Shape {
			if d < 0 {
				return &ValidationError{Type: "invalid_shape", Tensor: name, Details: fmt.Sprint(info.Shape), Err: ErrOutOfBounds}
			}
			elements *= int64(d)
		}
		if size := info.DataOffsets[1] - info.DataOffsets[0]; size != elements*bytesPerF32 {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("shape %v needs %d bytes, offsets span %d", info.Shape, elements*bytesPerF32, size),
				Err:     ErrOutOfBounds,
			}
		}
	}
	return ValidateTensorOffsets(h.Tensors, dataSize)
}
