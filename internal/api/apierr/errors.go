// Package apierr maps service errors onto the legacy protocol's error
// responses: an HTTP status plus a data element with ok="0" and the issue
// text as an attribute.
package apierr

import (
	"encoding/xml"
	"errors"
	"net/http"

	"github.com/veldt-labs/quartermaster/internal/api/request"
	"github.com/veldt-labs/quartermaster/internal/services/access"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
)

// errorDoc is the wire shape of every failure response.
type errorDoc struct {
	XMLName xml.Name `xml:"data"`
	Ok      int      `xml:"ok,attr"`
	Issue   string   `xml:"issue,attr"`
}

// httpError combines an HTTP status with the issue text sent to the client.
type httpError struct {
	status int
	issue  string
}

func (e *httpError) Error() string {
	return e.issue
}

// WriteError writes the error document for err.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(he.status)
	_ = xml.NewEncoder(w).Encode(errorDoc{Ok: 0, Issue: he.issue})
}

// toHTTPError classifies an error into its status and client-visible issue.
// The mapping is closed: anything unrecognized is an internal error and its
// detail stays out of the response.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var (
		validationErr *request.ValidationError

		ipErr         *access.IPNotAllowedError
		sidBlockedErr *access.SidBlockedError
		sidAllowErr   *access.SidNotAllowedError

		realmErr  *access.RealmNotConfiguredError
		digestErr *access.RealmDigestIncorrectError
		sidErr    *access.SidMismatchError
		ridErr    *access.RidIncorrectError

		notEnlistedErr *profile.PlayerNotEnlistedError
	)
	switch {
	case errors.As(err, &validationErr):
		return &httpError{http.StatusBadRequest, validationErr.Error()}

	case errors.As(err, &ipErr),
		errors.As(err, &sidBlockedErr),
		errors.As(err, &sidAllowErr):
		return &httpError{http.StatusForbidden, err.Error()}

	case errors.As(err, &realmErr):
		return &httpError{http.StatusBadRequest, realmErr.Error()}

	case errors.As(err, &digestErr),
		errors.As(err, &sidErr),
		errors.As(err, &ridErr):
		return &httpError{http.StatusUnauthorized, err.Error()}

	case errors.As(err, &notEnlistedErr):
		return &httpError{http.StatusNotFound, notEnlistedErr.Error()}

	default:
		return &httpError{http.StatusInternalServerError, "internal server error"}
	}
}

// NewInternalError creates an opaque internal error response.
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "internal server error"}
}
