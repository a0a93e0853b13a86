package hclust

import (
	"encoding/json"
	"fmt"
	"math"
)

// dendrogramJSON is the wire form of a Dendrogram. Merges use the scipy
// linkage-matrix row layout [left, right, distance, size].
type dendrogramJSON struct {
	N       int          `json:"n"`
	Linkage string       `json:"linkage"`
	Merges  [][4]float64 `json:"merges"`
	Leaves  []int        `json:"leaves"`
}

// MarshalJSON encodes d with its merges in linkage-matrix layout.
func (d *Dendrogram) MarshalJSON() ([]byte, error) {
	leaves := d.Leaves
	if leaves == nil {
		leaves = []int{}
	}
	return json.Marshal(dendrogramJSON{
		N:       d.N,
		Linkage: d.Linkage.String(),
		Merges:  d.Matrix(),
		Leaves:  leaves,
	})
}

// UnmarshalJSON decodes a dendrogram and validates its structure. The leaf
// order is recomputed from the merges.
func (d *Dendrogram) UnmarshalJSON(data []byte) error {
	var raw dendrogramJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	linkage, err := ParseLinkage(raw.Linkage)
	if err != nil {
		return err
	}

	merges := make([]Merge, len(raw.Merges))
	for i, row := range raw.Merges {
		for _, col := range [3]int{0, 1, 3} {
			if row[col] != math.Trunc(row[col]) {
				return fmt.Errorf("%w: merge %d has non-integral column %d: %v", ErrInvalidInput, i, col, row[col])
			}
		}
		merges[i] = Merge{
			Left:     int(row[0]),
			Right:    int(row[1]),
			Distance: row[2],
			Size:     int(row[3]),
		}
	}

	decoded := Dendrogram{N: raw.N, Linkage: linkage, Merges: merges}
	if err := decoded.Validate(); err != nil {
		return err
	}
	decoded.Leaves = leafOrder(decoded.N, decoded.Merges)
	*d = decoded
	return nil
}
