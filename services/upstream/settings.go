package upstream

import (
	"sync"
)

type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
)

const (
	productionBaseURL  = "https://api.art-altay.ru/v1"
	stagingBaseURL     = "https://staging-api.art-altay.ru/v1"
	developmentBaseURL = "http://localhost:3000/api"
)

// Settings holds the runtime-tweakable knobs of the upstream client.
// The debug endpoints mutate them while requests are in flight, hence
// the lock.
type Settings struct {
	mutex           sync.RWMutex
	environment     Environment
	useMocks        bool
	slowNetwork     bool
	baseURLOverride string
}

func NewSettings(environment Environment, useMocks bool) *Settings {
	if environment == "" {
		environment = EnvironmentProduction
	}

	return &Settings{
		environment: environment,
		useMocks:    useMocks,
	}
}

// OverrideBaseURL pins the base URL regardless of environment. An
// empty value restores environment-based selection.
func (s *Settings) OverrideBaseURL(baseURL string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.baseURLOverride = baseURL
}

func (s *Settings) BaseURL() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.baseURLOverride != "" {
		return s.baseURLOverride
	}

	switch s.environment {
	case EnvironmentDevelopment:
		return developmentBaseURL
	case EnvironmentStaging:
		return stagingBaseURL
	default:
		return productionBaseURL
	}
}

func (s *Settings) Environment() Environment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.environment
}

func (s *Settings) SetEnvironment(environment Environment) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.environment = environment
}

func (s *Settings) UseMocks() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.useMocks
}

func (s *Settings) SetUseMocks(useMocks bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.useMocks = useMocks
}

func (s *Settings) SlowNetwork() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.slowNetwork
}

func (s *Settings) SetSlowNetwork(slow bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.slowNetwork = slow
}
