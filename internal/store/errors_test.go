package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/store"
)

func TestErrNotFound_IsDomainNotFound(t *testing.T) {
	err := fmt.Errorf("get author: %w", store.ErrNotFound)

	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
}

func TestErrConditionFailed_CarriesNoCode(t *testing.T) {
	assert.Equal(t, domainerrors.CodeStorage, domainerrors.CodeOf(store.ErrConditionFailed))
	assert.False(t, domainerrors.Is(store.ErrConditionFailed, domainerrors.ErrNotFound))
}
