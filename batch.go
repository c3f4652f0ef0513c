package bgremover

import (
	"context"
	"time"
)

// BatchItem is one encoded image in a batch.
type BatchItem struct {
	Name string
	Data []byte
}

// BatchResult is the outcome for one BatchItem. Exactly one of Output and
// Err is meaningful.
type BatchResult struct {
	Name   string
	Output Raster
	Err    error
}

// BatchReport keeps results in input order.
type BatchReport struct {
	Results   []BatchResult
	Succeeded int
	Failed    int
}

// ProcessBatch decodes and processes items one after another. A failing item
// is recorded and the batch moves on. ctx is checked between images; once it
// is done the remaining items are recorded with ctx.Err() and skipped.
func ProcessBatch(ctx context.Context, items []BatchItem, opt Options) BatchReport {
	rep := BatchReport{Results: make([]BatchResult, 0, len(items))}
	for i, it := range items {
		if i > 0 && opt.BatchPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(opt.BatchPause):
			}
		}
		res := BatchResult{Name: it.Name}
		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Output, res.Err = processItem(it, opt)
		}
		if res.Err != nil {
			rep.Failed++
			Logger().Warn("batch item failed", "name", it.Name, "index", i, "err", res.Err)
		} else {
			rep.Succeeded++
		}
		rep.Results = append(rep.Results, res)
	}
	Logger().Debug("batch done", "succeeded", rep.Succeeded, "failed", rep.Failed)
	return rep
}

func processItem(it BatchItem, opt Options) (Raster, error) {
	r, err := DecodeBytes(it.Name, it.Data)
	if err != nil {
		return Raster{}, err
	}
	return Process(r, opt)
}
