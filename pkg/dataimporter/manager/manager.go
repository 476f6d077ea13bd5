package manager

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/datasets"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/formats"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/formats/tpscsv"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/formats/userscsv"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

func GetDataset(identifier string) (datasets.DataSet, error) {
	registered := GetRegisteredDataSets()

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, errors.New("Dataset could not be found")
}

func ImportDataset(dataset *datasets.DataSet) error {
	log.Info().Interface("dataset", dataset).Msg("Found dataset")

	var format formats.Format

	switch dataset.Format {
	case datasets.DataSetFormatTPSCSV:
		format = &tpscsv.TPSCSV{}
	case datasets.DataSetFormatUsersCSV:
		format = &userscsv.UsersCSV{}
	default:
		return fmt.Errorf("Unrecognised format %s", dataset.Format)
	}

	source := dataset.Source
	if isValidUrl(dataset.Source) {
		tempFile, _ := tempDownloadFile(dataset)

		source = tempFile.Name()
		defer os.Remove(tempFile.Name())
	}

	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := format.ParseFile(file); err != nil {
		return err
	}

	return format.Import(&wcdf.DataSource{
		OriginalFormat: string(dataset.Format),
		Provider:       dataset.Provider.Name,
		DatasetID:      dataset.Identifier,
		Timestamp:      fmt.Sprintf("%d", time.Now().Unix()),
	})
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func tempDownloadFile(dataset *datasets.DataSet) (*os.File, string) {
	req, _ := http.NewRequest("GET", dataset.Source, nil)
	req.Header["user-agent"] = []string{"curl/7.54.1"} // some upstreams reject requests with no user agent

	for key, value := range dataset.SourceAuthentication.Header {
		req.Header.Set(key, value)
	}

	if len(dataset.SourceAuthentication.Query) > 0 {
		query := req.URL.Query()
		for key, value := range dataset.SourceAuthentication.Query {
			query.Set(key, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	if dataset.SourceAuthentication.Basic.Username != "" {
		req.SetBasicAuth(dataset.SourceAuthentication.Basic.Username, dataset.SourceAuthentication.Basic.Password)
	}

	if dataset.DownloadHandler != nil {
		dataset.DownloadHandler(req)
	}

	client := &http.Client{}
	resp, err := client.Do(req)

	if err != nil {
		log.Fatal().Err(err).Msg("Download file")
	}
	defer resp.Body.Close()

	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	fileExtension := filepath.Ext(dataset.Source)
	if err == nil {
		fileExtension = filepath.Ext(params["filename"])
	}

	tmpFile, err := os.CreateTemp(os.TempDir(), "trashtrack-data-importer-")
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create temporary file")
	}

	io.Copy(tmpFile, resp.Body)

	return tmpFile, fileExtension
}
