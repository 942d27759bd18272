package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Validate loads a session, reports every structural finding, and runs
// the duplicate-mapping diagnostic. Findings never fail the command;
// only an unreadable file does.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}
	n, doc, findings, err := s.loadSession(ctx, path)
	if err != nil {
		return ValidateResult{}, err
	}
	duplicates := n.ValidateSensorRoles(ctx)
	return ValidateResult{
		Name:           doc.Name,
		ComponentCount: len(n.Components),
		PipeCount:      len(n.Pipes),
		Findings:       findings,
		Duplicates:     duplicates,
	}, nil
}
