package wcdf

type DataSource struct {
	OriginalFormat string `groups:"internal"` // eg. tps-csv, users-csv
	Provider       string `groups:"internal"`
	DatasetID      string `groups:"internal"`
	Timestamp      string `groups:"internal"`
}
