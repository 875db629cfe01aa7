package viz

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/assets"
	"github.com/Faultbox/sensorlab/internal/colormap"
	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/internal/sensor"
	"github.com/Faultbox/sensorlab/pkg/math"
)

// Dataset is a parsed sensor table ready to attach to a ViewState.
type Dataset struct {
	Values  [][]float64
	Matrix  *ColorMatrix
	Anchors []*Anchor
}

// BuildDataset parses table text and derives the colour matrix and anchors.
func BuildDataset(text string, layout sensor.Layout, positions []math.Vec3, g *colormap.Gradient) (*Dataset, error) {
	values, err := layout.Parse(text)
	if err != nil {
		return nil, err
	}
	anchors, err := NewAnchors(layout.Rows, positions)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Values:  values,
		Matrix:  BuildColorMatrix(values, g),
		Anchors: anchors,
	}, nil
}

// LoadDataset reads the table at path in the background and chains the
// parse and matrix build onto the read. A layout with more modules than
// positions fails without reading the file.
func LoadDataset(ctx context.Context, mgr *assets.Manager, path string, layout sensor.Layout, positions []math.Vec3, g *colormap.Gradient) *assets.Future[*Dataset] {
	if len(layout.Rows) > len(positions) {
		err := fmt.Errorf("%d enabled modules but only %d anchor positions", len(layout.Rows), len(positions))
		return assets.Resolved[*Dataset](nil, err)
	}

	read := mgr.LoadAsync(ctx, assets.KindTable, path)
	return assets.Then(ctx, read, func(data []byte) (*Dataset, error) {
		text := string(data)
		logger.Debug("sensor table", zap.String("path", path), zap.String("text", text))

		ds, err := BuildDataset(text, layout, positions, g)
		if err != nil {
			logger.Error("sensor table rejected", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		return ds, nil
	})
}
