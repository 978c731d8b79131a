// Package serialization saves and loads model weights in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}, plus "__metadata__"]
//	  [Tensor data: raw little-endian bytes, in header name order]
//
// Every tensor is stored as F32. Names are written in sorted order, so saving
// the same state dict twice yields identical files.
//
// Example usage:
//
//	// Save
//	err := serialization.WriteSafeTensors("model.safetensors", nn.StateDict(model), nil)
//
//	// Load
//	stateDict, meta, err := serialization.ReadSafeTensors("model.safetensors", tensor.CPU)
//	err = nn.LoadStateDict(model, stateDict)
package serialization
