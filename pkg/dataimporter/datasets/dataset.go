package datasets

import "net/http"

type DataSet struct {
	Identifier    string
	DataSourceRef string `json:"-"`
	Format        DataSetFormat

	Provider Provider

	Source               string
	SourceAuthentication SourceAuthentication `json:"-"`

	CustomConfig map[string]string

	DownloadHandler func(*http.Request) `json:"-"`
}

type SourceAuthentication struct {
	Query  map[string]string
	Header map[string]string
	Basic  struct {
		Username string
		Password string
	}
}

type DataSetFormat string

const (
	DataSetFormatTPSCSV   DataSetFormat = "tps-csv"
	DataSetFormatUsersCSV               = "users-csv"
)

type Provider struct {
	Name    string
	Website string
}
