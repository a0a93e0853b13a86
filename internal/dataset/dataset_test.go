package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const infectionsCSV = `patient,fever,cough,rash
p1,1,0,yes
p2,1,1,no

p3,0,0,true
`

func TestReadCSV_HeaderAndLabels(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(infectionsCSV), Options{Header: true, LabelColumn: 0})
	require.NoError(t, err)

	assert.Equal(t, []string{"fever", "cough", "rash"}, ds.Features)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ds.Labels)
	assert.Equal(t, [][]float64{
		{1, 0, 1},
		{1, 1, 0},
		{0, 0, 1},
	}, ds.Rows)
}

func TestReadCSV_NoHeaderNoLabels(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("1.5,2\n-3,4e1\n"), Options{LabelColumn: -1})
	require.NoError(t, err)

	assert.Nil(t, ds.Features)
	assert.Nil(t, ds.Labels)
	assert.Equal(t, [][]float64{{1.5, 2}, {-3, 40}}, ds.Rows)
}

func TestReadCSV_Errors(t *testing.T) {
	for _, tc := range []struct {
		name, body, want string
	}{
		{"non-numeric", "a,b\n1,x\n", "row 2 column 2"},
		{"missing", "a,b\n1,\n", "missing value"},
		{"too wide", "a,b\n1,2,3\n", "row 2 has 3 columns"},
		{"header only", "a,b\n", "no observations"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.body), Options{Header: true, LabelColumn: -1})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestReadCSV_LabelColumnOutOfRange(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2\n"), Options{LabelColumn: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label column 5")
}

func buildWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadXLSX(t *testing.T) {
	buf := buildWorkbook(t, "Infections", [][]any{
		{"id", "fever", "cough"},
		{"a", 1, 0},
		{"b", 0, 1},
	})

	ds, err := ReadXLSX(buf, Options{Header: true, LabelColumn: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "cough"}, ds.Features)
	assert.Equal(t, []string{"a", "b"}, ds.Labels)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, ds.Rows)
}

func TestReadXLSX_UnknownSheet(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]any{{1, 2}})
	_, err := ReadXLSX(buf, Options{LabelColumn: -1, Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Missing"`)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("1,2\n3,4\n"), 0o644))
	ds, err := Load(csvPath, Options{LabelColumn: -1})
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 2)

	txtPath := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("1,2\n"), 0o644))
	_, err = Load(txtPath, Options{LabelColumn: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}
