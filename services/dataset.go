package services

import (
	"fmt"
	"sync"

	"carswitch/config"
	"carswitch/models"
	"carswitch/storage"
	"carswitch/utils"
)

// Dataset is the immutable in-memory handle every aggregation call receives.
// Nothing mutates it after a successful load, so it is safe to recompute any
// view on every interaction.
type Dataset struct {
	Records    []*models.SurveyRecord
	Specs      []*models.VehicleSpec
	Benchmarks map[string]*float64
	Profile    *config.Profile
}

// Store loads datasets and memoizes them for the process lifetime, keyed by
// the (survey path, spec path) pair. Repeated loads of the same pair return
// the identical handle.
type Store struct {
	profile *config.Profile
	logger  *utils.Logger

	mu    sync.Mutex
	cache map[string]*Dataset
}

// NewStore creates a Store for the given analysis profile.
func NewStore(profile *config.Profile, logger *utils.Logger) *Store {
	return &Store{
		profile: profile,
		logger:  logger,
		cache:   make(map[string]*Dataset),
	}
}

// Load reads, normalizes and caches the two input files. A survey failure is
// fatal to the load and never cached; a specification failure only logs a
// warning and leaves the spec set empty so comparison features degrade
// instead of crashing.
func (s *Store) Load(surveyPath, specPath string) (*Dataset, error) {
	cacheKey := surveyPath + "\x00" + specPath

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.cache[cacheKey]; ok {
		return ds, nil
	}

	raw, err := storage.ReadSurvey(surveyPath)
	if err != nil {
		return nil, fmt.Errorf("load survey dataset: %w", err)
	}

	normalizer := NewNormalizer(s.profile, s.logger)
	records := normalizer.Normalize(raw)

	var specs []*models.VehicleSpec
	if specRows, err := storage.ReadSpecs(specPath); err != nil {
		s.logger.Warn("[dataset] Spec table unavailable, comparisons degrade: %v", err)
	} else {
		specs = normalizer.BuildSpecs(specRows)
	}

	ds := &Dataset{
		Records:    records,
		Specs:      specs,
		Benchmarks: ComputeBenchmarks(records, s.profile.FocalBrand, s.profile.TargetModels),
		Profile:    s.profile,
	}
	s.cache[cacheKey] = ds
	s.logger.Info("[dataset] Loaded %d records, %d specs from %s", len(records), len(specs), surveyPath)
	return ds, nil
}
