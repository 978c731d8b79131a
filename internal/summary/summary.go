// Package summary describes a model layer by layer: its type, output shape
// and number of trainable parameters.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/keras/internal/nn"
	"github.com/born-ml/keras/internal/tensor"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Layer is one row of a Summary.
type Layer struct {
	Name        string // e.g. "0.Linear"
	Type        string // e.g. "Linear"
	OutputShape tensor.Shape
	Params      int
}

// Summary lists the layers of a model.
type Summary struct {
	Layers []Layer
	Total  int
}

// Layers returns the sub-modules of m: the modules of a Sequential, or m itself.
func Layers[B tensor.Backend](m nn.Module[B]) []nn.Module[B] {
	if s, ok := m.(*nn.Sequential[B]); ok {
		return s.Modules()
	}
	return []nn.Module[B]{m}
}

// Of runs a single sample of inputShape (without the batch dimension)
// through m and records every layer's output shape.
func Of[B tensor.Backend](m nn.Module[B], inputShape tensor.Shape, b B) (*Summary, error) {
	s := &Summary{}
	shape := append(tensor.Shape{1}, inputShape...)
	err := exceptions.TryCatch[error](func() {
		x := tensor.Zeros(shape, b)
		for i, layer := range Layers(m) {
			x = layer.Forward(x)
			name := TypeName(layer)
			s.Layers = append(s.Layers, Layer{
				Name:        fmt.Sprintf("%d.%s", i, name),
				Type:        name,
				OutputShape: x.Shape().Clone(),
				Params:      nn.CountParams(layer),
			})
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "summary with input shape %v", inputShape)
	}
	s.Total = nn.CountParams(m)
	return s, nil
}

// TypeName returns the bare type name of a module, e.g. "Linear" for *nn.Linear[B].
func TypeName(m any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", m), "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// String renders the summary as a bordered table followed by the parameter count.
func (s *Summary) String() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Layer (type)", "Output Shape", "Param #").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return numberStyle
			}
			return cellStyle
		})
	for _, l := range s.Layers {
		t.Row(l.Name, formatShape(l.OutputShape), strconv.Itoa(l.Params))
	}
	return fmt.Sprintf("%s\nTotal params: %d\n", t.String(), s.Total)
}

// formatShape prints the batch dimension as None: (None, 128).
func formatShape(shape tensor.Shape) string {
	parts := []string{"None"}
	for _, d := range shape[1:] {
		parts = append(parts, strconv.Itoa(d))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
