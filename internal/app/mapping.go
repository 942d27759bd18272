package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// MapRole installs or removes one sensor-role mapping in a session and
// saves it back. Installing a column that is already mapped elsewhere
// displaces the stale roles, keeping the table injective.
func (s Service) MapRole(ctx context.Context, req MapRequest) (MapResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	roleKey := strings.TrimSpace(req.RoleKey)
	if path == "" || roleKey == "" {
		return MapResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path and role key are required")
	}
	column := strings.TrimSpace(req.Column)
	if !req.Remove && column == "" {
		return MapResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("column is required unless removing a mapping")
	}

	n, doc, _, err := s.loadSession(ctx, path)
	if err != nil {
		return MapResult{}, err
	}

	var displaced []string
	if req.Remove {
		if !n.UnmapRole(roleKey) {
			return MapResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("role key is not mapped: " + roleKey)
		}
	} else {
		displaced = n.MapSensorToRole(ctx, roleKey, column)
		if s.Metrics != nil {
			s.Metrics.RoleRemaps.Add(float64(len(displaced)))
		}
	}

	s.recompute(ctx, n)
	if err := s.Sessions.Save(path, s.buildDocument(n, doc)); err != nil {
		return MapResult{}, err
	}
	return MapResult{Displaced: displaced, MappingCount: len(n.SensorRoles)}, nil
}
