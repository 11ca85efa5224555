package compose

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"

	"github.com/bnema/mediastack/internal/domain"
)

type psEntry struct {
	Name       string        `json:"Name"`
	Service    string        `json:"Service"`
	State      string        `json:"State"`
	Health     string        `json:"Health"`
	Status     string        `json:"Status"`
	Publishers []psPublisher `json:"Publishers"`
}

type psPublisher struct {
	URL           string `json:"URL"`
	TargetPort    int    `json:"TargetPort"`
	PublishedPort int    `json:"PublishedPort"`
	Protocol      string `json:"Protocol"`
}

// parsePs decodes `ps --format json`. Older releases print a JSON array,
// newer ones print one object per line.
func parsePs(output string) ([]domain.ServiceContainer, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return []domain.ServiceContainer{}, nil
	}

	var entries []psEntry
	if strings.HasPrefix(output, "[") {
		if err := json.Unmarshal([]byte(output), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse compose ps output: %w", err)
		}
	} else {
		for _, line := range parseLines(output) {
			var entry psEntry
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				return nil, fmt.Errorf("failed to parse compose ps line: %w", err)
			}
			entries = append(entries, entry)
		}
	}

	result := make([]domain.ServiceContainer, 0, len(entries))
	for _, entry := range entries {
		result = append(result, domain.ServiceContainer{
			Name:    entry.Name,
			Service: entry.Service,
			State:   entry.State,
			Health:  entry.Health,
			Status:  entry.Status,
			Ports:   formatPublishers(entry.Publishers),
		})
	}
	return result, nil
}

func formatPublishers(publishers []psPublisher) []string {
	var ports []string
	seen := make(map[string]bool)
	for _, p := range publishers {
		if p.TargetPort == 0 {
			continue
		}
		proto := p.Protocol
		if proto == "" {
			proto = "tcp"
		}
		port, err := nat.NewPort(proto, strconv.Itoa(p.TargetPort))
		if err != nil {
			continue
		}

		formatted := string(port)
		if p.PublishedPort != 0 {
			host := p.URL
			if host == "" {
				host = "0.0.0.0"
			}
			formatted = fmt.Sprintf("%s:%d->%s", host, p.PublishedPort, port)
		}
		if !seen[formatted] {
			seen[formatted] = true
			ports = append(ports, formatted)
		}
	}
	return ports
}
