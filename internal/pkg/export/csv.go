// Package export renders application lists into spreadsheet formats.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/parkreg-io/parkreg/internal/modules/model"
)

// utf8BOM keeps Excel from mis-detecting the encoding of Korean headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var baseHeader = []string{"차량번호", "상태", "주차권", "신청일"}

const createdAtLayout = "2006-01-02 15:04:05"

// customKeys collects the distinct custom-field keys across the rows, in
// first-seen order.
func customKeys(apps []model.Application) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, a := range apps {
		for _, k := range a.CustomFieldKeys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func parkingTypeCell(a model.Application) string {
	if a.ParkingType == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d시간)", a.ParkingType.Name, a.ParkingType.Hours)
}

func rows(apps []model.Application) ([]string, [][]string) {
	keys := customKeys(apps)
	header := append(append([]string{}, baseHeader...), keys...)

	records := make([][]string, 0, len(apps))
	for _, a := range apps {
		rec := []string{
			a.CarNumber,
			model.StatusLabel(a.Status),
			parkingTypeCell(a),
			a.CreatedAt.Format(createdAtLayout),
		}
		for _, k := range keys {
			// missing values render as empty cells, never omitted columns
			v, _ := a.CustomFields[k].(string)
			rec = append(rec, v)
		}
		records = append(records, rec)
	}
	return header, records
}

// CSV renders the selection as a BOM-prefixed UTF-8 CSV document.
func CSV(apps []model.Application) ([]byte, error) {
	header, records := rows(apps)

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
