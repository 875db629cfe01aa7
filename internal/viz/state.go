package viz

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/internal/sensor"
)

var (
	// ErrNotReady is returned by Select before the matrix is attached.
	ErrNotReady = errors.New("colour matrix not loaded")
	// ErrAttached is returned by a second Attach.
	ErrAttached = errors.New("colour matrix already attached")
)

// ViewState owns the colour matrix, the anchors and the selected attribute.
// It is only touched from the frame loop.
type ViewState struct {
	matrix   *ColorMatrix
	anchors  []*Anchor
	selected int
}

// NewViewState starts with no matrix and attribute 0 selected.
func NewViewState() *ViewState {
	return &ViewState{}
}

// Attach installs the loaded matrix and its anchors and colours them for the
// current selection. It succeeds at most once.
func (s *ViewState) Attach(m *ColorMatrix, anchors []*Anchor) error {
	if s.matrix != nil {
		return ErrAttached
	}
	if err := Recolor(m, anchors, s.selected); err != nil {
		return err
	}
	s.matrix = m
	s.anchors = anchors

	logger.Info("colour matrix ready",
		zap.Int("anchors", m.Anchors()),
		zap.Int("attributes", m.Attributes()),
	)
	return nil
}

// Ready reports whether a matrix is attached.
func (s *ViewState) Ready() bool {
	return s.matrix != nil
}

// Selected returns the current attribute index.
func (s *ViewState) Selected() int {
	return s.selected
}

// Select switches the attribute and recolours every anchor. A bad index
// leaves the selection and colours unchanged.
func (s *ViewState) Select(attr int) error {
	if s.matrix == nil {
		return ErrNotReady
	}
	if err := Recolor(s.matrix, s.anchors, attr); err != nil {
		return err
	}
	s.selected = attr

	logger.Debug("attribute selected",
		zap.Int("index", attr),
		zap.Stringer("label", sensor.Attribute(attr)),
	)
	return nil
}

// Anchors returns the anchors, nil until Attach.
func (s *ViewState) Anchors() []*Anchor {
	return s.anchors
}

// Matrix returns the attached matrix, nil until Attach.
func (s *ViewState) Matrix() *ColorMatrix {
	return s.matrix
}
