package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func sampleApps() []model.Application {
	created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	threeHour := &model.ParkingType{ID: uuid.New(), Name: "3시간", Hours: 3}

	return []model.Application{
		{
			CarNumber:    "12가3456",
			Status:       model.StatusApproved,
			ParkingType:  threeHour,
			CreatedAt:    created,
			CustomFields: datatypes.JSONMap{"dept": "영업", "name": "홍길동"},
		},
		{
			CarNumber: "34나5678",
			Status:    model.StatusPending,
			CreatedAt: created.Add(time.Hour),
			// only one of the two custom keys set
			CustomFields: datatypes.JSONMap{"dept": "개발"},
		},
	}
}

func parse(t *testing.T, raw []byte) [][]string {
	t.Helper()
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "output must carry a UTF-8 BOM")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	assert.NoError(t, err)
	return records
}

func TestCSV_Projection(t *testing.T) {
	raw, err := CSV(sampleApps())
	assert.NoError(t, err)

	records := parse(t, raw)
	assert.Len(t, records, 3)

	assert.Equal(t, []string{"차량번호", "상태", "주차권", "신청일", "dept", "name"}, records[0])

	assert.Equal(t, "12가3456", records[1][0])
	assert.Equal(t, "승인됨", records[1][1])
	assert.Equal(t, "3시간 (3시간)", records[1][2])
	assert.Equal(t, "영업", records[1][4])
	assert.Equal(t, "홍길동", records[1][5])

	assert.Equal(t, "대기중", records[2][1])
	assert.Equal(t, "-", records[2][2], "missing parking type renders as dash")
	assert.Equal(t, "개발", records[2][4])
	assert.Equal(t, "", records[2][5], "missing custom value renders as empty cell, not omitted column")
}

func TestCSV_StatusLabels(t *testing.T) {
	created := time.Now()
	apps := []model.Application{
		{CarNumber: "11가1111", Status: model.StatusNeedsReview, CreatedAt: created},
		{CarNumber: "22나2222", Status: model.StatusRejected, CreatedAt: created},
	}

	raw, err := CSV(apps)
	assert.NoError(t, err)

	records := parse(t, raw)
	assert.Equal(t, "확인필요", records[1][1])
	assert.Equal(t, "거부됨", records[2][1])
}

func TestCSV_NoApplications(t *testing.T) {
	raw, err := CSV(nil)
	assert.NoError(t, err)

	records := parse(t, raw)
	assert.Len(t, records, 1)
	assert.Equal(t, []string{"차량번호", "상태", "주차권", "신청일"}, records[0])
}

func TestXLSX_Projection(t *testing.T) {
	raw, err := XLSX(sampleApps())
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)
	// xlsx is a zip container
	assert.Equal(t, []byte{'P', 'K'}, raw[:2])
}
