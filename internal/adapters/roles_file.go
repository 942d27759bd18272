package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"refmap/internal/schema"
	"refmap/internal/types"
)

// RolesFileAdapter loads a user-supplied required-roles catalog from
// YAML: a map of role name to candidate bindings, tried in order.
type RolesFileAdapter struct {
	Path string
}

func NewRolesFileAdapter(path string) RolesFileAdapter {
	return RolesFileAdapter{Path: path}
}

func (a RolesFileAdapter) RequiredRoles() (map[string][]types.RoleDef, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("roles file not found").
			WithCause(err)
	}
	var catalog map[string][]types.RoleDef
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse roles yaml").
			WithCause(err)
	}
	for role, defs := range catalog {
		if role == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("roles file contains an unnamed role")
		}
		for _, def := range defs {
			if !schema.Known(def.Type) {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("roles file references unknown component type " + string(def.Type))
			}
			if def.Port == "" {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("roles file entry for " + role + " is missing a port")
			}
		}
	}
	return catalog, nil
}
