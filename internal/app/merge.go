package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"refmap/internal/adapters"
	"refmap/internal/types"
)

// Merge combines two session files into one. The diagram with more
// components wins outright, with the newer session timestamp breaking a
// tie; role mappings are the union of both files with the first file
// winning on key collision. The merged network is rebuilt,
// re-validated, and re-propagated before it is written, so the output
// never carries stale effective attributes.
func (s Service) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	pathA := strings.TrimSpace(req.PathA)
	pathB := strings.TrimSpace(req.PathB)
	outputPath := strings.TrimSpace(req.OutputPath)
	if pathA == "" || pathB == "" || outputPath == "" {
		return MergeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("merge requires two input paths and an output path")
	}

	docA, err := s.Sessions.Load(pathA)
	if err != nil {
		return MergeResult{}, err
	}
	docB, err := s.Sessions.Load(pathB)
	if err != nil {
		return MergeResult{}, err
	}

	merged := mergeDocuments(docA, docB)
	n, findings := s.rebuild(ctx, merged)
	for _, finding := range findings {
		log.Ctx(ctx).Warn().Str("finding", finding).Msg("merged session finding")
	}
	n.ValidateSensorRoles(ctx)
	s.recompute(ctx, n)

	doc := s.buildDocument(n, merged)
	if err := s.Sessions.Save(outputPath, doc); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{
		ComponentCount: len(n.Components),
		PipeCount:      len(n.Pipes),
		MappingCount:   len(n.SensorRoles),
		OutputPath:     outputPath,
	}, nil
}

func mergeDocuments(a, b types.SessionDocument) types.SessionDocument {
	richer, other := a, b
	switch {
	case len(b.Components) > len(a.Components):
		richer, other = b, a
	case len(b.Components) == len(a.Components):
		// Equal-sized diagrams fall back to recency. An unparseable
		// timestamp sorts as the zero time, so the first input keeps
		// precedence unless the second is provably newer.
		if adapters.ParseTimestamp(b.Timestamp).After(adapters.ParseTimestamp(a.Timestamp)) {
			richer, other = b, a
		}
	}

	merged := types.SessionDocument{
		Name:        richer.Name,
		Components:  richer.Components,
		Pipes:       richer.Pipes,
		SensorRoles: map[string]string{},
		CSVPath:     richer.CSVPath,
		Aggregation: richer.Aggregation,
		Refrigerant: richer.Refrigerant,
	}
	if merged.Name == "" {
		merged.Name = other.Name
	}
	if merged.CSVPath == "" {
		merged.CSVPath = other.CSVPath
	}
	if merged.Aggregation == "" {
		merged.Aggregation = other.Aggregation
	}
	if merged.Refrigerant == "" {
		merged.Refrigerant = other.Refrigerant
	}

	for role, column := range b.SensorRoles {
		merged.SensorRoles[role] = column
	}
	for role, column := range a.SensorRoles {
		merged.SensorRoles[role] = column
	}
	return merged
}
