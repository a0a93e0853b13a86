// Package hclust implements agglomerative hierarchical clustering.
//
// Clustering starts from one singleton cluster per observation and
// repeatedly merges the two closest clusters until one remains. The merge
// history is returned as a [Dendrogram], which can be cut into flat
// partitions either by cluster count or by height.
//
// Basic usage:
//
//	cfg := hclust.DefaultConfig()
//	cfg.Linkage = hclust.LinkageAverage
//	d, err := hclust.Cluster(data, cfg)
//	// d.Merges[i] joins clusters Left and Right at Distance; the new
//	// cluster gets id d.N+i.
//	p, err := d.CutTree(3)
//	// p.Labels[i] is the cluster of observation i.
//
// For precomputed distances:
//
//	dm, err := hclust.NewDistanceMatrix(flat, n)
//	d, err := hclust.BuildDendrogram(dm, cfg)
//
// # Metrics and linkages
//
// Metric and Linkage are closed sets resolved by [ParseMetric] and
// [ParseLinkage]. Invalid combinations (centroid, median or Ward linkage on
// a non-Euclidean metric) are rejected before any distances are computed.
//
// # Ties
//
// When several cluster pairs share the minimum distance, the pair whose
// smaller cluster id is lowest wins, then the pair whose larger id is
// lowest. Identical input therefore always yields an identical dendrogram.
//
// # Algorithm selection
//
// Config.Algorithm defaults to "auto", which uses the generic O(n³)
// nearest-pair search with Lance-Williams updates. Single linkage can also
// be built from a minimum spanning tree in O(n²):
//
//	cfg.Algorithm = hclust.AlgorithmMST
package hclust
