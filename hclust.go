package hclust

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Config controls distance computation and dendrogram construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Metric is the distance function between observations. When a
	// precomputed matrix is passed to BuildDendrogram, Metric describes how
	// that matrix was produced and is only used to validate the linkage.
	// Default: MetricEuclidean.
	Metric Metric

	// MinkowskiP is the order of the Minkowski metric. Only used with
	// MetricMinkowski. Must be >= 1. Default: 2.
	MinkowskiP float64

	// Linkage is the inter-cluster distance rule. Centroid, median and Ward
	// linkage require MetricEuclidean. Default: LinkageComplete.
	Linkage Linkage

	// Algorithm selects the construction strategy. Default: "auto".
	Algorithm Algorithm

	// Workers controls the number of goroutines used for pairwise
	// distances. 0 means runtime.NumCPU(). Must be >= 0.
	Workers int

	// Logger receives debug progress and warnings (e.g. merge inversions).
	// Default: a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with Euclidean distances and complete
// linkage.
func DefaultConfig() Config {
	return Config{
		Metric:     MetricEuclidean,
		MinkowskiP: 2,
		Linkage:    LinkageComplete,
		Algorithm:  AlgorithmAuto,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.MinkowskiP == 0 {
		cfg.MinkowskiP = 2
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig rejects unknown options and incompatible metric/linkage
// combinations before any work starts.
func validateConfig(cfg *Config) error {
	if _, ok := metricNames[cfg.Metric]; !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedMetric, cfg.Metric)
	}
	if !cfg.Linkage.valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedLinkage, cfg.Linkage)
	}
	if cfg.Linkage.requiresEuclidean() && cfg.Metric != MetricEuclidean {
		return fmt.Errorf("%w: %v linkage requires the euclidean metric, got %v",
			ErrUnsupportedLinkage, cfg.Linkage, cfg.Metric)
	}
	if cfg.Metric == MetricMinkowski {
		if _, err := cfg.Metric.distanceFunc(cfg.MinkowskiP); err != nil {
			return err
		}
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: Workers must be >= 0, got %d", ErrInvalidParameter, cfg.Workers)
	}
	if _, err := selectAlgorithm(*cfg); err != nil {
		return err
	}
	return nil
}

// Cluster computes the distance matrix of data and builds its dendrogram.
// Each element is an observation; all observations must have the same
// dimensionality.
func Cluster(data [][]float64, cfg Config) (*Dendrogram, error) {
	applyDefaults(&cfg)
	dm, err := ComputeDistanceMatrix(data, cfg)
	if err != nil {
		return nil, err
	}
	return BuildDendrogram(dm, cfg)
}
