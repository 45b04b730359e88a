package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replyRequest struct {
	Content string `json:"content" validate:"required,notblank"`
	Topic   string `json:"topic,omitempty" validate:"omitempty,max=5"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(replyRequest{Content: "hello"}))

	tests := []struct {
		name  string
		req   replyRequest
		field string
		tag   string
	}{
		{"empty content", replyRequest{}, "content", "required"},
		{"whitespace content", replyRequest{Content: "  \n\t"}, "content", "notblank"},
		{"long topic", replyRequest{Content: "x", Topic: "abcdefg"}, "topic", "max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)

			body, ok := he.Message.(echo.Map)
			require.True(t, ok)
			assert.Equal(t, tt.tag, body["fields"].(map[string]string)[tt.field])
		})
	}
}
