package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlex/internal/domain"
)

func sampleDictionary() domain.Dictionary {
	return domain.Dictionary{
		Version:     "1.0",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Events: []domain.DictionaryEvent{
			{
				Name:             "checkout_completed",
				EventType:        domain.EventTypeSuccess,
				ActionType:       domain.ActionTypeAction,
				Purpose:          "measure conversion",
				TriggerCondition: "payment confirmed",
				Actor:            "shopper",
				Object:           "order",
				ContextSurface:   "checkout",
				Properties: []domain.Property{
					{Name: "order_total", Type: domain.PropertyTypeNumber, Required: true},
					{Name: "coupon_code", Type: domain.PropertyTypeString},
				},
				ContextKeys: []string{"session_id", "tenant_id"},
				Lifecycle:   domain.LifecycleProposed,
				APIBinding:  domain.BindingAddAction,
				Notes:       "core funnel event",
			},
			{
				Name:             "payment_failed",
				EventType:        domain.EventTypeFailure,
				ActionType:       domain.ActionTypeError,
				Purpose:          "diagnose declines",
				TriggerCondition: "gateway rejects charge",
				Lifecycle:        domain.LifecycleProposed,
				APIBinding:       domain.BindingAddError,
				ErrorCode:        "CARD_DECLINED",
				ErrorMessage:     "card was declined",
			},
		},
	}
}

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())

	dict := sampleDictionary()
	require.NoError(t, w.WriteDictionary(&dict))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Len(t, header, 15)
	assert.Equal(t, "Event Name", header[0])
	assert.Equal(t, "Notes", header[14])

	first := rows[1]
	assert.Equal(t, "checkout_completed", first[0])
	assert.Equal(t, "success", first[1])
	assert.Equal(t, "action", first[2])
	assert.Equal(t, "order_total:number!; coupon_code:string", first[8])
	assert.Equal(t, "session_id, tenant_id", first[9])
	assert.Equal(t, "addAction", first[11])

	second := rows[2]
	assert.Equal(t, "payment_failed", second[0])
	assert.Equal(t, "CARD_DECLINED", second[12])
	assert.Equal(t, "card was declined", second[13])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Project", "My_Project"},
		{"q4/analytics: v2", "q4_analytics_v2"},
		{"__already__clean__", "already_clean"},
		{"dashes-are-kept", "dashes-are-kept"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "SanitizeFilename(%q)", tt.in)
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcde"
	}
	assert.Len(t, SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("My Project", "csv")
	want := fmt.Sprintf("My_Project_%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, got)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Equal(t, "text/markdown", ContentType("md"))
	assert.Equal(t, "text/markdown", ContentType("markdown"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType("xlsx"))
	assert.Equal(t, "", ContentType("pdf"))
}
