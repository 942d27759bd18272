package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Resolve loads a session, runs a full propagation recompute, and
// writes the session back with fresh effective pipe attributes. With no
// explicit output path the input file is overwritten in place.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = path
	}

	n, doc, _, err := s.loadSession(ctx, path)
	if err != nil {
		return ResolveResult{}, err
	}
	result := s.recompute(ctx, n)
	log.Ctx(ctx).Info().
		Int("passes", result.Passes).
		Int("updates", result.Updates).
		Int("conflicts", len(result.Conflicts)).
		Msg("propagation complete")

	if err := s.Sessions.Save(outputPath, s.buildDocument(n, doc)); err != nil {
		return ResolveResult{}, err
	}
	return ResolveResult{
		Passes:     result.Passes,
		Updates:    result.Updates,
		Conflicts:  result.Conflicts,
		OutputPath: outputPath,
	}, nil
}
