package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"StudentCode", "StudentName", "Status"},
		Rows: []map[string]string{
			{"StudentCode": "S001", "StudentName": "Sam Lee", "Status": "Present"},
			{"StudentCode": "S002", "StudentName": "Ana, Jr.", "Status": "Late"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "StudentCode,StudentName,Status\nS001,Sam Lee,Present\nS002,\"Ana, Jr.\",Late\n", string(out))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Session attendance")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExporterMetadata(t *testing.T) {
	var e Exporter = NewPDFExporter()
	assert.Equal(t, "application/pdf", e.ContentType())
	assert.Equal(t, "pdf", e.Extension())
	e = NewCSVExporter()
	assert.Equal(t, "text/csv", e.ContentType())
	assert.Equal(t, "csv", e.Extension())
}

func TestCSVNeutralizesFormulas(t *testing.T) {
	data := Dataset{
		Headers: []string{"StudentName", "Status"},
		Rows:    []map[string]string{{"StudentName": "=HYPERLINK(\"x\")", "Status": "-"}},
	}
	out, err := NewCSVExporter().Render(data, "")
	require.NoError(t, err)
	assert.Equal(t, "StudentName,Status\n\"'=HYPERLINK(\"\"x\"\")\",'-\n", string(out))
}

func TestPDFSpansPages(t *testing.T) {
	data := Dataset{Headers: []string{"StudentCode", "Status"}}
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, map[string]string{"StudentCode": fmt.Sprintf("S%03d", i), "Status": "Present"})
	}
	out, err := NewPDFExporter().Render(data, "")
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("/Count ")))
	assert.False(t, bytes.Contains(out, []byte("/Count 1\n")))
}
