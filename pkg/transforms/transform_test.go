package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

func setupTestDefinitions() {
	transforms = nil

	transforms = append(transforms, &TransformDefinition{
		Type: "wcdf.TPS",
		Match: map[string]string{
			"PrimaryIdentifier": "ID:TPS:MEN-001",
		},
		Data: map[string]interface{}{
			"Name": "TPS Menteng Utara",
		},
	})
	transforms = append(transforms, &TransformDefinition{
		Type: "wcdf.TPS",
		Match: map[string]string{
			"PrimaryIdentifier": "ID:TPS:DEPOT",
		},
		Data: map[string]interface{}{
			"Status": "inactive",
		},
	})
}

func TestTransformPointer(t *testing.T) {
	setupTestDefinitions()

	tps := &wcdf.TPS{
		PrimaryIdentifier: "ID:TPS:MEN-001",
		Name:              "MENTENG UTARA (OLD)",
		Status:            "active",
	}

	Transform(tps)

	assert.Equal(t, "TPS Menteng Utara", tps.Name)
	assert.Equal(t, "active", tps.Status, "definitions for other records must not apply")
}

func TestTransformSliceElements(t *testing.T) {
	setupTestDefinitions()

	tpsRecords := []wcdf.TPS{
		{PrimaryIdentifier: "ID:TPS:MEN-001", Name: "old name"},
		{PrimaryIdentifier: "ID:TPS:DEPOT", Status: "active"},
		{PrimaryIdentifier: "ID:TPS:TBT-014", Name: "TPS Tebet Timur"},
	}

	Transform(tpsRecords)

	assert.Equal(t, "TPS Menteng Utara", tpsRecords[0].Name)
	assert.Equal(t, "inactive", tpsRecords[1].Status)
	assert.Equal(t, "TPS Tebet Timur", tpsRecords[2].Name, "unmatched records are untouched")
}

func TestTransformIgnoresOtherTypes(t *testing.T) {
	setupTestDefinitions()

	user := &wcdf.User{
		PrimaryIdentifier: "ID:TPS:MEN-001",
		Name:              "Budi",
	}

	Transform(user)

	assert.Equal(t, "Budi", user.Name)
}

func TestTransformSkipsUnassignableData(t *testing.T) {
	transforms = nil
	transforms = append(transforms, &TransformDefinition{
		Type: "wcdf.TPS",
		Match: map[string]string{
			"PrimaryIdentifier": "ID:TPS:MEN-001",
		},
		Data: map[string]interface{}{
			"Name": 42,
		},
	})

	tps := &wcdf.TPS{PrimaryIdentifier: "ID:TPS:MEN-001", Name: "unchanged"}

	Transform(tps)

	assert.Equal(t, "unchanged", tps.Name)
}
