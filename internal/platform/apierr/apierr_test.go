package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalid("bad"), http.StatusBadRequest},
		{ErrNotFound("missing"), http.StatusNotFound},
		{ErrConflict("dup"), http.StatusConflict},
		{New(CodeUnauthenticated, "no token"), http.StatusUnauthorized},
		// 遷移エラーと業務ルール却下はすべて409
		{New(CodeNotPending, ""), http.StatusConflict},
		{New(CodeNotApproved, ""), http.StatusConflict},
		{New(CodeNotIssued, ""), http.StatusConflict},
		{New(CodeNotRejectable, ""), http.StatusConflict},
		{New(CodeCapacityExceeded, ""), http.StatusConflict},
		{New(CodeInsufficientStock, ""), http.StatusConflict},
		{ErrInternal("boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.err), "err=%v", tc.err)
	}
}

func TestCodeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("store: %w", ErrNotFound("missing"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(err))

	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
