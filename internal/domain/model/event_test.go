package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventRequest_Validate(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	req := CreateEventRequest{Title: " Open House ", StartsAt: start, EndsAt: &end}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Open House", req.Title)
}

func TestCreateEventRequest_Validate_Errors(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	tests := []struct {
		name   string
		req    CreateEventRequest
		errMsg string
	}{
		{"missing title", CreateEventRequest{StartsAt: start}, "title is required"},
		{"zero start", CreateEventRequest{Title: "X"}, "starts_at is required"},
		{
			"ends before starts",
			CreateEventRequest{Title: "X", StartsAt: start, EndsAt: &before},
			"ends_at cannot be before starts_at",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestUpdateEventRequest_Validate(t *testing.T) {
	var req UpdateEventRequest
	assert.Error(t, req.Validate())

	title := "  Renamed  "
	req.Title = &title
	require.NoError(t, req.Validate())
	assert.Equal(t, "Renamed", *req.Title)
}
