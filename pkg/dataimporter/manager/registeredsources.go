package manager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

func GetRegisteredDataSets() []datasets.DataSet {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk("data/datasources/",
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !fileInfo.IsDir() {
				log.Debug().Str("path", path).Msg("Loading datasource file")

				extension := filepath.Ext(path)

				if extension != ".yaml" {
					return nil
				}

				datasourceYaml, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

				for {
					var datasource datasets.DataSource
					if decoder.Decode(&datasource) != nil {
						break
					}

					for _, dataset := range datasource.Datasets {
						dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
						dataset.DataSourceRef = datasource.Identifier
						dataset.Provider = datasource.Provider

						if datasource.SourceAuthentication != nil {
							dataset.SourceAuthentication = *datasource.SourceAuthentication
						}

						registeredDatasets = append(registeredDatasets, dataset)
					}
				}
			}

			return nil
		})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load datasources directory")
	}

	return registeredDatasets
}
