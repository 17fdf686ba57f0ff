package validate

import (
	"testing"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID string `validate:"required"`
	Quantity  int64  `validate:"gt=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&sample{ProductID: "p-1", Quantity: 2}))

	err := Struct(&sample{Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	fields := appErr.Details["fields"].(map[string]string)
	assert.Equal(t, "required", fields["sample.ProductID"])
	assert.Equal(t, "gt=0", fields["sample.Quantity"])
}
