package app

import (
	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/strategies"
)

// DetectStrategy determines the source kind, and so the strategy, for a URL
func DetectStrategy(url string) domain.Kind {
	return domain.DetectKind(url)
}

// IsValidStrategy reports whether a strategy exists for kind
func IsValidStrategy(kind domain.Kind) bool {
	for _, k := range domain.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// CreateStrategy creates the strategy for a source kind
func CreateStrategy(kind domain.Kind, deps *strategies.Dependencies) strategies.Strategy {
	switch kind {
	case domain.KindStandardEbooks:
		return strategies.NewStandardEbooksStrategy(deps)
	case domain.KindGovernment:
		return strategies.NewGovernmentStrategy(deps)
	case domain.KindGutenberg:
		return strategies.NewGutenbergStrategy(deps)
	case domain.KindWikibooks:
		return strategies.NewWikibooksStrategy(deps)
	default:
		return nil
	}
}

// GetAllStrategies returns all available strategies in processing order
func GetAllStrategies(deps *strategies.Dependencies) []strategies.Strategy {
	all := make([]strategies.Strategy, 0, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		all = append(all, CreateStrategy(kind, deps))
	}
	return all
}

// FindMatchingStrategy finds the first strategy that can handle the source
func FindMatchingStrategy(src catalog.Source, deps *strategies.Dependencies) strategies.Strategy {
	for _, strategy := range GetAllStrategies(deps) {
		if strategy.CanHandle(src) {
			return strategy
		}
	}
	return nil
}
