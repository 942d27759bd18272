package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"refmap/internal/core"
	"refmap/internal/types"
)

// RequiredRoles resolves every required calculation role against the
// network: the built-in catalog by default, or a user-supplied YAML
// catalog when a roles path is given.
func (s Service) RequiredRoles(ctx context.Context, req RolesRequest) (RolesResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return RolesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}

	n, _, _, err := s.loadSession(ctx, path)
	if err != nil {
		return RolesResult{}, err
	}
	s.recompute(ctx, n)

	catalog := RequiredSensorRoles()
	if rolesPath := strings.TrimSpace(req.RolesPath); rolesPath != "" {
		catalog, err = s.Roles(rolesPath).RequiredRoles()
		if err != nil {
			return RolesResult{}, err
		}
	}

	rows, missing := ResolveRequiredRoles(n, catalog)
	if len(missing) > 0 {
		log.Ctx(ctx).Warn().
			Strs("roles", missing).
			Msg("required roles without a resolvable column")
	}
	return RolesResult{Rows: rows, Missing: missing}, nil
}

// Readings derives the compressor pressures and the per-circuit
// evaporator outlet temperatures from the mapped sensor data.
func (s Service) Readings(ctx context.Context, req AuditRequest) (ReadingsResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return ReadingsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}
	n, doc, _, err := s.loadSession(ctx, path)
	if err != nil {
		return ReadingsResult{}, err
	}
	values, err := s.openValues(ctx, req.CSVPath, doc)
	if err != nil {
		return ReadingsResult{}, err
	}
	if values == nil {
		return ReadingsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("readings require a sensor data file")
	}

	aggregation := doc.Aggregation
	if aggregation == "" {
		aggregation = types.AggregationAverage
	}
	result := ReadingsResult{OutletGroups: map[string][]float64{}}
	for _, entry := range core.EnumeratePorts(n) {
		if entry.Column == "" {
			continue
		}
		value, ok := values.Value(entry.Column, aggregation)
		if !ok {
			continue
		}
		switch {
		case entry.Type == types.ComponentCompressor && entry.Port == "inlet":
			v := value
			result.Suction = &v
		case entry.Type == types.ComponentCompressor && entry.Port == "outlet":
			v := value
			result.Discharge = &v
		case entry.Type == types.ComponentEvaporator && strings.HasPrefix(entry.Port, "outlet_circuit_"):
			label := entry.CircuitLabel
			if label != types.CircuitNone && label != "" {
				result.OutletGroups[label] = append(result.OutletGroups[label], value)
			}
		}
	}
	return result, nil
}
