package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/signupform"
)

func signupServer(t *testing.T, status int, body any, got *[]models.SignupRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*got = append(*got, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunSubmit_Success(t *testing.T) {
	var got []models.SignupRequest
	server := signupServer(t, http.StatusCreated, models.SignupResponse{Message: "Thanks for signing up!"}, &got)

	var out bytes.Buffer
	err := runSubmit(context.Background(), &out, signupform.NewHTTPSubmitter(server.URL, nil), signupform.Fields{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "0821234567",
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Thank you for signing up!")
	require.Len(t, got, 1)
	assert.Equal(t, "+27821234567", got[0].Phone)
}

func TestRunSubmit_InvalidFields(t *testing.T) {
	var got []models.SignupRequest
	server := signupServer(t, http.StatusCreated, models.SignupResponse{}, &got)

	var out bytes.Buffer
	err := runSubmit(context.Background(), &out, signupform.NewHTTPSubmitter(server.URL, nil), signupform.Fields{
		FullName: "Jane",
		Email:    "jane@",
		Phone:    "+27821234567",
	})

	assert.ErrorIs(t, err, signupform.ErrInvalidFields)
	assert.Contains(t, out.String(), signupform.MessageFullName)
	assert.Contains(t, out.String(), signupform.MessageEmail)
	assert.NotContains(t, out.String(), signupform.MessagePhone)
	assert.Empty(t, got)
}

func TestRunSubmit_DuplicatePhone(t *testing.T) {
	var got []models.SignupRequest
	server := signupServer(t, http.StatusBadRequest,
		models.ErrorResponse{Error: "Unable to update contact, SMS is already associated with another Contact"}, &got)

	var out bytes.Buffer
	err := runSubmit(context.Background(), &out, signupform.NewHTTPSubmitter(server.URL, nil), signupform.Fields{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+27821234567",
	})

	assert.ErrorIs(t, err, signupform.ErrDuplicatePhone)
	assert.Contains(t, out.String(), signupform.MessagePhoneDuplicate)
}

func TestRunSubmit_ServerFailure(t *testing.T) {
	var got []models.SignupRequest
	server := signupServer(t, http.StatusInternalServerError, models.ErrorResponse{Error: "Something went wrong."}, &got)

	var out bytes.Buffer
	err := runSubmit(context.Background(), &out, signupform.NewHTTPSubmitter(server.URL, nil), signupform.Fields{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+27821234567",
	})

	assert.ErrorIs(t, err, signupform.ErrSubmitFailed)
	assert.Contains(t, out.String(), "Something went wrong.")
}

func TestFieldValidator(t *testing.T) {
	tests := []struct {
		field   signupform.Field
		value   string
		wantErr string
	}{
		{signupform.FieldFullName, "Jane Doe", ""},
		{signupform.FieldFullName, "Jane", signupform.MessageFullName},
		{signupform.FieldEmail, "jane@example.com", ""},
		{signupform.FieldEmail, "jane@example", signupform.MessageEmail},
		{signupform.FieldPhone, "0821234567", ""},
		{signupform.FieldPhone, "821234567", signupform.MessagePhone},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"/"+tt.value, func(t *testing.T) {
			err := fieldValidator(tt.field)(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
