package app

import (
	"time"

	"refmap/internal/adapters"
	"refmap/internal/ports"
)

type Service struct {
	Sessions  ports.SessionStorePort
	AuditCSV  ports.AuditWriterPort
	AuditXLSX ports.AuditWriterPort
	Values    func(path string) (ports.ValueProviderPort, error)
	Roles     func(path string) ports.RoleCatalogPort
	Clock     func() time.Time
	Metrics   *Metrics
}

func NewService() Service {
	return Service{
		Sessions:  adapters.NewSessionFileAdapter(),
		AuditCSV:  adapters.NewCSVAuditAdapter(),
		AuditXLSX: adapters.NewXLSXAuditAdapter(),
		Values: func(path string) (ports.ValueProviderPort, error) {
			return adapters.NewCSVValueAdapter(path)
		},
		Roles: func(path string) ports.RoleCatalogPort {
			return adapters.NewRolesFileAdapter(path)
		},
		Clock:   time.Now,
		Metrics: NewMetrics(),
	}
}
