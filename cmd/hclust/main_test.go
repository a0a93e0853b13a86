package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/hclust"
)

type decodedOutput struct {
	RunID                 string            `json:"run_id"`
	Metric                string            `json:"metric"`
	Dendrogram            hclust.Dendrogram `json:"dendrogram"`
	LeafLabels            []string          `json:"leaf_labels"`
	CopheneticCorrelation *float64          `json:"cophenetic_correlation"`
	Partitions            []partitionOutput `json:"partitions"`
}

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_FourPoints(t *testing.T) {
	path := writeTable(t, "x\n1\n2\n6\n7\n")

	var stdout bytes.Buffer
	err := run([]string{"-k", "2", "-height", "1.5", "-workers", "2", path}, &stdout, io.Discard)
	require.NoError(t, err)

	var out decodedOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, "euclidean", out.Metric)
	assert.Equal(t, hclust.LinkageComplete, out.Dendrogram.Linkage)
	assert.Equal(t, [][4]float64{
		{0, 1, 1, 2},
		{2, 3, 1, 2},
		{4, 5, 6, 4},
	}, out.Dendrogram.Matrix())
	assert.Equal(t, []string{"0", "1", "2", "3"}, out.LeafLabels)

	require.NotNil(t, out.CopheneticCorrelation)
	assert.InDelta(t, 0.9562, *out.CopheneticCorrelation, 1e-3)

	require.Len(t, out.Partitions, 2)
	assert.Equal(t, "k", out.Partitions[0].By)
	assert.Equal(t, 2, out.Partitions[0].K)
	assert.Equal(t, []int{0, 0, 1, 1}, out.Partitions[0].Labels)
	assert.Equal(t, "height", out.Partitions[1].By)
	require.NotNil(t, out.Partitions[1].Height)
	assert.Equal(t, 1.5, *out.Partitions[1].Height)
	assert.Equal(t, [][]string{{"0", "1"}, {"2", "3"}}, out.Partitions[1].Clusters)
}

func TestRun_LabelledBinaryTable(t *testing.T) {
	path := writeTable(t, `patient,fever,cough,rash,headache
ann,1,1,0,0
bob,1,1,0,1
cat,0,0,1,1
dan,0,0,1,0
`)
	cfgPath := filepath.Join(t.TempDir(), "hclust.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
metric: jaccard
linkage: average
input:
  header: true
  label_column: 0
`), 0o644))

	var stdout bytes.Buffer
	err := run([]string{"-config", cfgPath, "-k", "2", path}, &stdout, io.Discard)
	require.NoError(t, err)

	var out decodedOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

	assert.Equal(t, "jaccard", out.Metric)
	assert.Equal(t, hclust.LinkageAverage, out.Dendrogram.Linkage)
	require.Len(t, out.Partitions, 1)
	assert.Equal(t, [][]string{{"ann", "bob"}, {"cat", "dan"}}, out.Partitions[0].Clusters)
	assert.ElementsMatch(t, []string{"ann", "bob", "cat", "dan"}, out.LeafLabels)
}

func TestRun_Errors(t *testing.T) {
	path := writeTable(t, "x\n1\n2\n")

	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"no input", nil, "expected exactly one input table"},
		{"bad linkage", []string{"-linkage", "flexible", path}, "Linkage must be one of"},
		{"ward on manhattan", []string{"-linkage", "ward", "-metric", "manhattan", path}, "requires the euclidean metric"},
		{"k too large", []string{"-k", "3", path}, "k=3 outside [1, 2]"},
		{"missing table", []string{filepath.Join(t.TempDir(), "none.csv")}, "dataset:"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.args, io.Discard, io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
