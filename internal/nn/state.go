package nn

import (
	"fmt"

	"github.com/born-ml/keras/internal/tensor"
)

// StateDict returns the named parameter tensors of m.
//
// Stateful modules name their own entries; for any other module the
// parameters are keyed by name, prefixed by their position when names repeat.
func StateDict[B tensor.Backend](m Module[B]) map[string]*tensor.RawTensor {
	if s, ok := m.(Stateful); ok {
		return s.StateDict()
	}
	return paramStateDict(m.Parameters())
}

// LoadStateDict copies the tensors of stateDict into m's parameters.
func LoadStateDict[B tensor.Backend](m Module[B], stateDict map[string]*tensor.RawTensor) error {
	if s, ok := m.(Stateful); ok {
		return s.LoadStateDict(stateDict)
	}
	params := m.Parameters()
	names := paramNames(params)
	for i, p := range params {
		if err := loadInto(p.Tensor(), stateDict, names[i]); err != nil {
			return err
		}
	}
	return nil
}

func paramStateDict[B tensor.Backend](params []*Parameter[B]) map[string]*tensor.RawTensor {
	names := paramNames(params)
	stateDict := make(map[string]*tensor.RawTensor, len(params))
	for i, p := range params {
		stateDict[names[i]] = p.Tensor().Raw()
	}
	return stateDict
}

func paramNames[B tensor.Backend](params []*Parameter[B]) []string {
	seen := make(map[string]int, len(params))
	for _, p := range params {
		seen[p.Name()]++
	}
	names := make([]string, len(params))
	for i, p := range params {
		if seen[p.Name()] > 1 {
			names[i] = fmt.Sprintf("%d.%s", i, p.Name())
		} else {
			names[i] = p.Name()
		}
	}
	return names
}
