// Package endpoints implements the informational endpoint directory.
// URLs are derived from the catalog and are never probed.
package endpoints

import (
	"fmt"
	"strconv"

	"github.com/docker/go-connections/nat"

	"github.com/bnema/mediastack/internal/domain"
)

// DefaultHost is the host every endpoint is published on.
const DefaultHost = "localhost"

// Service implements the EndpointService interface.
type Service struct {
	host      string
	endpoints []domain.Endpoint
}

// NewService builds the directory from the catalog, keeping its order.
// Services without a web port are skipped.
func NewService(services []domain.ServiceDescriptor, host string) (*Service, error) {
	if host == "" {
		host = DefaultHost
	}

	endpoints := make([]domain.Endpoint, 0, len(services))
	for _, svc := range services {
		if svc.Port == 0 {
			continue
		}

		port, err := nat.NewPort("tcp", strconv.Itoa(svc.Port))
		if err != nil {
			return nil, fmt.Errorf("invalid port for service %s: %w", svc.Name, err)
		}

		endpoints = append(endpoints, domain.Endpoint{
			Service: svc.Name,
			URL:     endpointURL(host, port, svc.Path),
		})
	}

	return &Service{host: host, endpoints: endpoints}, nil
}

func endpointURL(host string, port nat.Port, path string) string {
	return fmt.Sprintf("http://%s:%d%s", host, port.Int(), path)
}

// Endpoints returns a copy of the directory.
func (s *Service) Endpoints() []domain.Endpoint {
	out := make([]domain.Endpoint, len(s.endpoints))
	copy(out, s.endpoints)
	return out
}

// For returns the endpoints of the named services, in the order given.
// Names without an endpoint are skipped.
func (s *Service) For(names []string) []domain.Endpoint {
	index := make(map[string]domain.Endpoint, len(s.endpoints))
	for _, e := range s.endpoints {
		index[e.Service] = e
	}

	out := make([]domain.Endpoint, 0, len(names))
	for _, name := range names {
		if e, ok := index[name]; ok {
			out = append(out, e)
		}
	}
	return out
}
