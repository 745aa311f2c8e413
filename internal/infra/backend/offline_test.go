package backend

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffline(t *testing.T) {
	_, err := Offline{}.SubmitOrder(context.Background(), model.Order{})
	be, ok := asBackendError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, be.Status)

	res, err := Offline{}.SubmitContact(context.Background(), model.ContactMessage{})
	require.NoError(t, err)
	assert.True(t, res.Success)
}
