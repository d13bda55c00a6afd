package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/observability/log"
)

func TestRunWithBuiltinCatalog(t *testing.T) {
	logger := log.New(log.LevelError)
	require.NoError(t, run(logger, 1, 0, 3, "", "compact", ""))
	require.NoError(t, run(logger, 42, 2, 1, "terrestrial", "base64", ""))

	require.Error(t, run(logger, 1, 0, 1, "", "xml", ""))
	require.Error(t, run(logger, 1, 0, 1, "nebula", "compact", ""))
}

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog, err := loadCatalog("")
	require.NoError(t, err)

	reg := blueprint.NewRegistry(nil)
	require.NoError(t, catalog.Apply(reg))
	assert.Equal(t, 4, reg.Len())

	_, err = reg.Get("ice ring")
	require.NoError(t, err)
}
