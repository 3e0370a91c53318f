package config

import "uiflow/pkg/utils"

// DomainConfig holds the configurable rules of the flow graph model
type DomainConfig struct {
	// Graph constraints
	MaxNodesPerGraph int `validate:"gte=0"`

	// Node constraints
	MaxTagsPerNode int `validate:"gte=0"`

	// Tag constraints
	MaxTagTitleLength int `validate:"gt=0"`

	// Linking rules
	AllowSelfLinks bool

	// Namespace defaulting, applied once when a graph is first loaded
	NamespaceSuffix string `validate:"required"`

	// Layout used for the last-modified stamp written on flush
	LastModifiedLayout string `validate:"required"`
}

// DefaultDomainConfig returns the default domain configuration.
// A zero limit means unlimited.
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerGraph:   0,
		MaxTagsPerNode:     0,
		MaxTagTitleLength:  64,
		AllowSelfLinks:     false,
		NamespaceSuffix:    ".UI",
		LastModifiedLayout: "02.01.2006 03:04",
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxNodesPerGraph = 2000
	config.MaxTagsPerNode = 32

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxTagTitleLength = 256
	config.AllowSelfLinks = true

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks the configuration against its constraints
func (c *DomainConfig) Validate() error {
	return utils.ValidateStruct(c)
}
