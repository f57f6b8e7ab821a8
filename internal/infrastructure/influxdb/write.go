package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteReading mirrors an accepted sensor reading into the time-series
// bucket.
//
// The write is non-blocking; data is batched and sent asynchronously.
// The hash field links the mirrored sample back to its ledger record.
// Numeric values are stored as a float field for aggregation queries;
// the raw string is always kept alongside.
//
// Parameters:
//   - deviceID: the submitting device
//   - dataType: the reading kind (e.g., "temperature")
//   - dataValue: the reading payload, verbatim
//   - hash: the ledger content hash of the data point
//   - timestamp: logical acceptance time in Unix seconds
func (c *Client) WriteReading(deviceID, dataType, dataValue, hash string, timestamp int64) {
	if !c.IsConnected() {
		return
	}

	fields := map[string]interface{}{
		"value_raw": dataValue,
		"hash":      hash,
	}
	if v, err := strconv.ParseFloat(dataValue, 64); err == nil {
		fields["value"] = v
	}

	point := write.NewPoint(
		"readings",
		map[string]string{
			"device_id": deviceID,
			"data_type": dataType,
		},
		fields,
		time.Unix(timestamp, 0).UTC(),
	)

	c.writeAPI.WritePoint(point)
}
