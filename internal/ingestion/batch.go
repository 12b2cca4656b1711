package ingestion

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/ai"
	"github.com/spigell/skillscribe/internal/pipeline"
)

// Result is the outcome of importing a single CV file.
type Result struct {
	Path      string
	Candidate *pipeline.Candidate
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Importer turns CV files into candidates of one job posting.
type Importer struct {
	gateway ai.CVParser
	store   *pipeline.Store
	logger  *zap.Logger
}

func NewImporter(gateway ai.CVParser, store *pipeline.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{gateway: gateway, store: store, logger: logger}
}

// Import parses the files one after another. A failing file is reported in its
// Result and does not stop the batch.
func (i *Importer) Import(ctx context.Context, jobID string, paths []string) ([]Result, error) {
	if _, err := i.store.Job(jobID); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Path: path, Err: err})
			continue
		}

		candidate, err := i.importOne(ctx, jobID, path)
		if err != nil {
			i.logger.Warn("cv import failed", zap.String("path", path), zap.Error(err))
			results = append(results, Result{Path: path, Err: err})
			continue
		}

		i.logger.Info("candidate imported from cv",
			zap.String("path", path),
			zap.String("candidate_id", candidate.ID),
		)
		results = append(results, Result{Path: path, Candidate: &candidate})
	}

	return results, nil
}

func (i *Importer) importOne(ctx context.Context, jobID, path string) (pipeline.Candidate, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return pipeline.Candidate{}, err
	}

	details, err := i.gateway.ParseCV(ctx, doc)
	if err != nil {
		return pipeline.Candidate{}, err
	}

	return i.store.AddCandidate(pipeline.CandidateFields{
		Name:  details.Name,
		Email: details.Email,
		JobID: jobID,
	}), nil
}

// Summary counts successful and failed results.
func Summary(results []Result) (imported, failed int) {
	for _, r := range results {
		if r.OK() {
			imported++
		} else {
			failed++
		}
	}
	return imported, failed
}
