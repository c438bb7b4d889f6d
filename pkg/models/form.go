package models

import "strings"

// SignupRequest is the body posted by the landing page form
type SignupRequest struct {
	FullName string `json:"fullName" form:"fullName" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Phone    string `json:"phone" form:"phone" validate:"required"`
}

// Trim returns a copy of the request with surrounding whitespace removed
func (r SignupRequest) Trim() SignupRequest {
	return SignupRequest{
		FullName: strings.TrimSpace(r.FullName),
		Email:    strings.TrimSpace(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
	}
}

// ContactRecord is what gets registered with the email-marketing provider
type ContactRecord struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// NewContactRecord derives a contact from a signup request
func NewContactRecord(req SignupRequest) ContactRecord {
	first, last := SplitFullName(req.FullName)
	return ContactRecord{
		Email:     req.Email,
		FirstName: first,
		LastName:  last,
		Phone:     req.Phone,
	}
}

// SplitFullName returns the first whitespace separated token as the first
// name and the remaining tokens, joined by single spaces, as the last name.
func SplitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// SignupResponse is returned on a successful signup
type SignupResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
