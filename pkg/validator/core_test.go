package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "validation failed", validator.ValidationErrors{}.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{Field: "name", Message: "field is required"},
			{Field: "email", Message: "must be a valid email address"},
		}
		assert.Equal(t, "validation failed: name: field is required; email: must be a valid email address", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "name", Message: "too long"})
	errs.Add(validator.ValidationError{Field: "email", Message: "invalid"})
	errs.Add(validator.ValidationError{Field: "name", Message: "forbidden characters"})

	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("title"))
	assert.Equal(t, []string{"too long", "forbidden characters"}, errs.Get("name"))
	assert.Equal(t, []string{"name", "email"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"name":  {"too long", "forbidden characters"},
		"email": {"invalid"},
	}, errs.Map())
	assert.False(t, errs.IsEmpty())
}

func TestApply(t *testing.T) {
	t.Parallel()

	pass := validator.Rule{Check: func() bool { return true }, Error: validator.ValidationError{Field: "a"}}
	fail := func(field string) validator.Rule {
		return validator.Rule{Check: func() bool { return false }, Error: validator.ValidationError{Field: field, Message: "bad"}}
	}

	t.Run("nil when all rules pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(pass, pass))
		assert.NoError(t, validator.Apply())
	})

	t.Run("collects failed rules in order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(fail("b"), pass, fail("c"))
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, "b", verrs[0].Field)
		assert.Equal(t, "c", verrs[1].Field)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	nameErr := validator.Apply(validator.RequiredString("name", ""))
	emailErr := validator.Apply(validator.ValidEmail("email", "nope"))

	merged := validator.Merge(nameErr, nil, emailErr)
	require.Error(t, merged)
	verrs := validator.ExtractValidationErrors(merged)
	assert.Equal(t, []string{"name", "email"}, verrs.Fields())

	assert.NoError(t, validator.Merge(nil, nil))
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))

	wrapped := fmt.Errorf("signup: %w", validator.Apply(validator.RequiredString("name", " ")))
	verrs := validator.ExtractValidationErrors(wrapped)
	require.NotNil(t, verrs)
	assert.True(t, verrs.Has("name"))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.False(t, validator.IsValidationError(errors.New("plain")))
	assert.False(t, validator.IsValidationError(nil))
}
