package app

import (
	"github.com/Faultbox/sensorlab/internal/assets"
	"github.com/Faultbox/sensorlab/internal/engine/model"
	"github.com/Faultbox/sensorlab/internal/viz"
)

// loadSink receives finished loads on the frame loop.
type loadSink interface {
	modelLoaded(*model.Mesh)
	datasetLoaded(*viz.Dataset) error
	loadFailed(what string, err error)
}

// loads tracks the background model and table loads. Each future is handed
// to the sink exactly once and then dropped.
type loads struct {
	model *assets.Future[*model.Mesh]
	data  *assets.Future[*viz.Dataset]
}

// poll checks both loads without blocking.
func (l *loads) poll(sink loadSink) {
	if l.model != nil {
		if mesh, ok, err := l.model.Poll(); ok {
			l.model = nil
			if err != nil {
				sink.loadFailed("model", err)
			} else {
				sink.modelLoaded(mesh)
			}
		}
	}

	if l.data != nil {
		if ds, ok, err := l.data.Poll(); ok {
			l.data = nil
			if err == nil {
				err = sink.datasetLoaded(ds)
			}
			if err != nil {
				sink.loadFailed("table", err)
			}
		}
	}
}

// pending reports whether any load is still outstanding.
func (l *loads) pending() bool {
	return l.model != nil || l.data != nil
}
