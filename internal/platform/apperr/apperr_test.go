package apperr

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
		{Invalid("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Internal("boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("missing")), http.StatusNotFound},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToHTTPStatus(c.err), "for %v", c.err)
	}
}

func TestFrom(t *testing.T) {
	dto := From(Conflict("Region with this name already exists"))
	assert.Equal(t, CodeConflict, dto.Error.Code)
	assert.Equal(t, "Region with this name already exists", dto.Error.Message)

	// ドメイン外のエラーは INTERNAL 扱い
	dto = From(errors.New("sql: connection refused"))
	assert.Equal(t, CodeInternal, dto.Error.Code)
}
