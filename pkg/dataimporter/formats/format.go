package formats

import (
	"io"

	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

type Format interface {
	ParseFile(io.Reader) error
	Import(*wcdf.DataSource) error
}
