package initsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

func TestModelsCoverEveryDataCollection(t *testing.T) {
	cols := global.DefaultColNames()
	models := Models(cols)
	for _, name := range cols.All() {
		if name == cols.Counters {
			assert.NotContains(t, models, name)
			continue
		}
		assert.Contains(t, models, name)
	}
}
