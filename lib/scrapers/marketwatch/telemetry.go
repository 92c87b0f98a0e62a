package marketwatch

import (
	"marketview-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("marketview.lib.scrapers.marketwatch")

func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, tracer, out)
}
