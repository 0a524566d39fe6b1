package conversationreq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_ParsedDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    *time.Time
		wantErr bool
	}{
		{name: "empty is nil", date: "", want: nil},
		{name: "valid date", date: "2025-06-01", want: timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))},
		{name: "partial date", date: "2025-06", wantErr: true},
		{name: "reversed format", date: "01-06-2025", wantErr: true},
		{name: "timestamp not accepted", date: "2025-06-01T10:00:00Z", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query := SearchQuery{Date: tc.date}
			got, err := query.ParsedDate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got))
		})
	}
}

func TestCreateConversationRequest_Timestamp(t *testing.T) {
	req := CreateConversationRequest{ConversationTimestamp: "2025-06-01T10:30:00+09:00"}
	ts, err := req.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, 2025, ts.Year())

	req.ConversationTimestamp = "June 1st 2025"
	_, err = req.Timestamp()
	assert.Error(t, err)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
