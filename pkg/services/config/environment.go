package config

import (
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// ParseEnvironment maps a deployment flag to an Environment. Only the literal
// "development" selects development; everything else is production.
func ParseEnvironment(value string) Environment {
	if value == string(EnvironmentDevelopment) {
		return EnvironmentDevelopment
	}
	return EnvironmentProduction
}

// Profile carries the environment conditional endpoints.
type Profile struct {
	BaseURL       string
	PDFServiceURL string
}

var builtinProfiles = map[Environment]Profile{
	EnvironmentDevelopment: {
		BaseURL:       "http://agroinform-prices-backend.test/api",
		PDFServiceURL: "http://localhost:3002",
	},
	EnvironmentProduction: {
		BaseURL:       "https://data.agroinform.asia/api",
		PDFServiceURL: "https://prices.agroinform.asia/api/pdf",
	},
}

type ProfileRegistry interface {
	GetEnvironments() []Environment
	GetProfile(env Environment) (Profile, error)
}

type profileRegistry struct {
	profiles map[Environment]Profile
}

// NewProfileRegistry returns the built-in profiles, overridden section by section
// by the INI file at path when path is not empty.
func NewProfileRegistry(path string) (ProfileRegistry, error) {
	profiles := make(map[Environment]Profile, len(builtinProfiles))
	for env, p := range builtinProfiles {
		profiles[env] = p
	}

	if path == "" {
		return &profileRegistry{profiles: profiles}, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment profiles: %w", err)
	}

	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		env := Environment(section.Name())
		p := profiles[env]
		if section.HasKey("base_url") {
			p.BaseURL = section.Key("base_url").String()
		}
		if section.HasKey("pdf_service_url") {
			p.PDFServiceURL = section.Key("pdf_service_url").String()
		}
		profiles[env] = p
	}

	return &profileRegistry{profiles: profiles}, nil
}

func (pr *profileRegistry) GetEnvironments() []Environment {
	envs := make([]Environment, 0, len(pr.profiles))
	for env := range pr.profiles {
		envs = append(envs, env)
	}
	sort.Slice(envs, func(i, j int) bool { return envs[i] < envs[j] })
	return envs
}

func (pr *profileRegistry) GetProfile(env Environment) (Profile, error) {
	p, ok := pr.profiles[env]
	if !ok {
		return Profile{}, fmt.Errorf("profile %s not found", env)
	}
	return p, nil
}
