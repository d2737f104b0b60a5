package module

import (
	"snipjar/internal/services/classify/domain"
)

// Ports is what classify lends to other modules
type Ports struct {
	Service domain.ServicePort
	Engine  domain.EngineInfo
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
