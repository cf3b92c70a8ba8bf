package flag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/models"
)

func TestJob_Window(t *testing.T) {
	lima, err := common.LoadLocation(common.TimezoneLima)
	require.NoError(t, err)

	tests := []struct {
		name      string
		job       Job
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "plain dates cover the whole end day",
			job:       Job{Start: "2024-07-01", End: "2024-07-31"},
			wantStart: time.Date(2024, time.July, 1, 0, 0, 0, 0, lima),
			wantEnd:   time.Date(2024, time.July, 31, 23, 59, 59, int(999*time.Millisecond), lima),
		},
		{
			name:      "datetimes are taken as given",
			job:       Job{Start: "2024-07-01T08:00:00", End: "2024-07-01T18:30:00"},
			wantStart: time.Date(2024, time.July, 1, 8, 0, 0, 0, lima),
			wantEnd:   time.Date(2024, time.July, 1, 18, 30, 0, 0, lima),
		},
		{name: "missing end", job: Job{Start: "2024-07-01"}, wantErr: true},
		{name: "bad start", job: Job{Start: "07/01/2024", End: "2024-07-31"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.job.Window()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}
}

func TestJob_Request(t *testing.T) {
	job := Job{
		IDs:           []string{"a,b", " c "},
		FundIDs:       []string{"BLUM-CASH-USD, BLUM-CASH-PEN", ""},
		CSV:           true,
		Upload:        true,
		PreserveOrder: true,
	}

	assert.Equal(t, []string{"a", "b", "c"}, job.IDList())

	got := job.Request(models.SelectionCriteria{IDs: job.IDList()})
	assert.Equal(t, models.NoticeReportRequest{
		Criteria: models.SelectionCriteria{
			IDs:           []string{"a", "b", "c"},
			FundIDs:       []string{"BLUM-CASH-USD", "BLUM-CASH-PEN"},
			PreserveOrder: true,
		},
		WriteCSV: true,
		Upload:   true,
	}, got)
}
