package stylesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInsertAndRemovePreserveOrder(t *testing.T) {
	r := NewRegistry(nil)
	r.InsertStyle("a{}")
	r.InsertStyle("b{}")
	r.InsertStyle("a{}")
	r.InsertStyle("c{}")

	assert.True(t, r.RemoveStyle("a{}"))
	assert.Equal(t, []string{"b{}", "a{}", "c{}"}, r.Styles())
	assert.False(t, r.RemoveStyle("zzz"))
	assert.Equal(t, 5, r.Version())
}

func TestInsertLogsText(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRegistry(zap.New(core))
	r.InsertStyle("not even css")

	entries := logs.FilterMessage("inserted style").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "not even css", entries[0].ContextMap()["css"])
}
