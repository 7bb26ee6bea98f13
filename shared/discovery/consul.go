package discovery

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes how a service instance announces itself to Consul.
type Registration struct {
	ID      string
	Name    string
	Address string
	Port    int

	// HealthPath is the HTTP path Consul probes, e.g. "/healthz".
	HealthPath string
}

// Register announces the service to the local Consul agent and returns a
// deregister function for shutdown.
func Register(consulAddr string, reg Registration, logger *zerolog.Logger) (func(), error) {
	cfg := consulapi.DefaultConfig()
	if consulAddr != "" {
		cfg.Address = consulAddr
	}

	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	serviceReg := &consulapi.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: reg.Address,
		Port:    reg.Port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", reg.Address, reg.Port, reg.HealthPath),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(serviceReg); err != nil {
		return nil, fmt.Errorf("failed to register service with consul: %w", err)
	}

	logger.Info().Str("service", reg.Name).Str("id", reg.ID).Msg("registered with consul")

	return func() {
		if err := client.Agent().ServiceDeregister(reg.ID); err != nil {
			logger.Error().Err(err).Msg("failed to deregister service from consul")
		}
	}, nil
}
