package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testForm struct {
	Text string `form:"text" binding:"notblank"`
	Slug string `form:"slug" binding:"required,slug,max=50"`
}

func TestValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	assert.NoError(t, binding.Validator.ValidateStruct(&testForm{Text: "hi", Slug: "test-slug_2"}))

	err := binding.Validator.ValidateStruct(&testForm{Text: "  \n ", Slug: "bad slug"})
	require.Error(t, err)
	fields := ValidationFields(err)
	assert.Equal(t, "This field is required", fields["text"])
	assert.Contains(t, fields["slug"], "valid slug")

	err = binding.Validator.ValidateStruct(&testForm{Text: "x"})
	assert.Equal(t, "This field is required", ValidationFields(err)["slug"])
}
