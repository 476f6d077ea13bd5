package tpscsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	source := strings.Join([]string{
		"id,name,address,latitude,longitude,status",
		"MEN-001,TPS Menteng Utara,Jl. Cikini Raya No. 73,-6.1934,106.8405,active",
		"TBT-014,TPS Tebet Timur,Jl. Tebet Timur Dalam Raya No. 141,-6.2297,106.8532,",
	}, "\n")

	format := &TPSCSV{}
	require.NoError(t, format.ParseFile(strings.NewReader(source)))

	require.Len(t, format.Records, 2)

	assert.Equal(t, "MEN-001", format.Records[0].Identifier)
	assert.Equal(t, "TPS Menteng Utara", format.Records[0].Name)
	assert.InDelta(t, -6.1934, format.Records[0].Latitude, 0.0001)
	assert.InDelta(t, 106.8405, format.Records[0].Longitude, 0.0001)
	assert.Equal(t, "active", format.Records[0].Status)

	assert.Equal(t, "TBT-014", format.Records[1].Identifier)
	assert.Empty(t, format.Records[1].Status)
}

func TestParseFileShortRecords(t *testing.T) {
	source := strings.Join([]string{
		"id,name,address,latitude,longitude,status",
		"MEN-001,TPS Menteng Utara",
	}, "\n")

	format := &TPSCSV{}
	require.NoError(t, format.ParseFile(strings.NewReader(source)))

	require.Len(t, format.Records, 1)
	assert.Equal(t, "MEN-001", format.Records[0].Identifier)
	assert.Empty(t, format.Records[0].Address)
}
