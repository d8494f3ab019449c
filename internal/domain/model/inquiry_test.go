package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInquiryStatus(t *testing.T) {
	status, ok := ParseInquiryStatus("Contacted")
	assert.True(t, ok)
	assert.Equal(t, InquiryStatusContacted, status)

	status, ok = ParseInquiryStatus(" new ")
	assert.True(t, ok)
	assert.Equal(t, InquiryStatusNew, status)

	_, ok = ParseInquiryStatus("archived")
	assert.False(t, ok)
}

func TestCreateInquiryRequest_Validate(t *testing.T) {
	req := CreateInquiryRequest{
		Name:    " Parent Name ",
		Email:   "PARENT@example.com",
		Message: "  Interested in the science program.  ",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Parent Name", req.Name)
	assert.Equal(t, "parent@example.com", req.Email)
	assert.Equal(t, "Interested in the science program.", req.Message)
}

func TestCreateInquiryRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateInquiryRequest
		errMsg string
	}{
		{
			"missing message",
			CreateInquiryRequest{Name: "A", Email: "a@example.com"},
			"message is required",
		},
		{
			"missing email",
			CreateInquiryRequest{Name: "A", Message: "hello"},
			"email is required",
		},
		{
			"empty course id",
			CreateInquiryRequest{Name: "A", Email: "a@example.com", Message: "hello", CourseID: strPtr(" ")},
			"course_id cannot be empty",
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

func TestUpdateInquiryRequest_Validate(t *testing.T) {
	var req UpdateInquiryRequest
	assert.Error(t, req.Validate())

	bad := InquiryStatus("archived")
	req.Status = &bad
	assert.Error(t, req.Validate())

	good := InquiryStatus(" Closed ")
	req.Status = &good
	require.NoError(t, req.Validate())
	assert.Equal(t, InquiryStatusClosed, *req.Status)
}

func strPtr(s string) *string { return &s }
