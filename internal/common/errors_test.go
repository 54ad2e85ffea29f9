package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrVersionConflict, ErrorInternal, ErrorUnauthorized, ErrorForbidden,
		ErrInvalidToken, ErrTokenExpired, ErrUpload, ErrDownload, ErrConnectivity,
		ErrCorruptImage, ErrParse, ErrSyncInProgress,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("entry 2025-06-01: %w", fmt.Errorf("put: %w", ErrUpload))
	assert.ErrorIs(t, err, ErrUpload)
	assert.NotErrorIs(t, err, ErrDownload)
}
