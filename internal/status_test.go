package models_test

import (
	"testing"

	models "github.com/chrisdamba/babysitter/internal"
	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range models.Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, models.Status("archived").Valid())
	assert.False(t, models.Status("").Valid())

	s, ok := models.ParseStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, models.StatusNoShow, s)
}

func TestStatusCatalog(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		catalog := models.NewStatusCatalog()

		info, ok := catalog.Lookup(models.StatusCancelled)
		assert.True(t, ok)
		assert.Equal(t, models.StatusInfo{Name: models.StatusCancelled, Label: "Cancelled", Color: "red"}, info)

		_, ok = catalog.Lookup("archived")
		assert.False(t, ok)
	})

	t.Run("Overrides", func(t *testing.T) {
		catalog := models.NewStatusCatalog(
			models.StatusInfo{Name: models.StatusPending, Label: "Awaiting review"},
			models.StatusInfo{Name: models.StatusNoShow, Color: "black"},
			models.StatusInfo{Name: "archived", Label: "Archived", Color: "white"},
		)

		pending, _ := catalog.Lookup(models.StatusPending)
		assert.Equal(t, "Awaiting review", pending.Label)
		assert.Equal(t, "yellow", pending.Color)

		noShow, _ := catalog.Lookup(models.StatusNoShow)
		assert.Equal(t, "No Show", noShow.Label)
		assert.Equal(t, "black", noShow.Color)

		all := catalog.All()
		assert.Len(t, all, len(models.Statuses))
		for i, s := range models.Statuses {
			assert.Equal(t, s, all[i].Name)
		}
	})

	t.Run("Zero value falls back to defaults", func(t *testing.T) {
		var catalog models.StatusCatalog

		info, ok := catalog.Lookup(models.StatusAssigned)
		assert.True(t, ok)
		assert.Equal(t, "Assigned", info.Label)
	})
}
