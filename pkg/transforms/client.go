package transforms

var transforms []*TransformDefinition

func SetupClient() {
	// Menteng district
	// The council CSV exports still carry the pre-2023 station names
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
			"PrimaryIdentifier": "ID:TPS:MEN-002",
		},
		Data: map[string]interface{}{
			"Name": "TPS Menteng Selatan",
		},
	})

	// Tebet district
	transforms = append(transforms, &TransformDefinition{
		Type: "wcdf.TPS",
		Match: map[string]string{
			"PrimaryIdentifier": "ID:TPS:TBT-014",
		},
		Data: map[string]interface{}{
			"Name":    "TPS Tebet Timur",
			"Address": "Jl. Tebet Timur Dalam Raya No. 141",
		},
	})

	// The depot shows up in some exports as a collection point, hide it
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
