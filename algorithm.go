package hclust

import "fmt"

// Algorithm selects the dendrogram construction strategy.
type Algorithm string

const (
	// AlgorithmAuto resolves to AlgorithmGeneric.
	AlgorithmAuto Algorithm = "auto"
	// AlgorithmGeneric performs the O(n³) nearest-pair search with
	// Lance-Williams distance updates. It supports every linkage.
	AlgorithmGeneric Algorithm = "generic"
	// AlgorithmMST builds a minimum spanning tree with Prim's algorithm and
	// labels it with union-find (O(n²)). Only valid for single linkage.
	// Merge heights match AlgorithmGeneric; merges at equal height follow
	// MST edge order instead of the cluster-id tie-break.
	AlgorithmMST Algorithm = "mst"
)

// ParseAlgorithm maps an algorithm name to its Algorithm. The empty string
// maps to AlgorithmAuto.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case "":
		return AlgorithmAuto, nil
	case AlgorithmAuto, AlgorithmGeneric, AlgorithmMST:
		return a, nil
	default:
		return "", fmt.Errorf("%w: invalid Algorithm %q", ErrInvalidParameter, name)
	}
}

// selectAlgorithm resolves AlgorithmAuto into a concrete algorithm choice
// and validates that user-forced choices are compatible with the linkage.
func selectAlgorithm(cfg Config) (Algorithm, error) {
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmGeneric:
		return AlgorithmGeneric, nil
	case AlgorithmMST:
		if cfg.Linkage != LinkageSingle {
			return "", fmt.Errorf("%w: algorithm %q requires single linkage, got %v",
				ErrInvalidParameter, cfg.Algorithm, cfg.Linkage)
		}
		return AlgorithmMST, nil
	default:
		return "", fmt.Errorf("%w: invalid Algorithm %q", ErrInvalidParameter, cfg.Algorithm)
	}
}
