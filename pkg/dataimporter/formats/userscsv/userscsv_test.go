package userscsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	source := strings.Join([]string{
		"id,name,role,phone_number,status",
		"U1,Budi Santoso,driver,+62811000001,active",
		"U2,Siti Rahma,admin,,active",
	}, "\n")

	format := &UsersCSV{}
	require.NoError(t, format.ParseFile(strings.NewReader(source)))

	require.Len(t, format.Records, 2)

	assert.Equal(t, "U1", format.Records[0].Identifier)
	assert.Equal(t, "Budi Santoso", format.Records[0].Name)
	assert.Equal(t, "driver", format.Records[0].Role)
	assert.Equal(t, "+62811000001", format.Records[0].PhoneNumber)

	assert.Equal(t, "admin", format.Records[1].Role)
	assert.Empty(t, format.Records[1].PhoneNumber)
}
