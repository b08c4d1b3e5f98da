package oteladapters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log"
)

func Test_ToLogAttributes_KeepsValueKinds(t *testing.T) {
	// act
	attrs := toLogAttributes([]any{
		"title", "Dune",
		"count", 2,
		"id", int64(7),
		"ms", 1.25,
		"late", true,
		"error", errors.New("boom"),
		"dangling",
	})

	// assert
	assert.Len(t, attrs, 6)
	assert.Equal(t, log.KindString, attrs[0].Value.Kind())
	assert.Equal(t, log.KindInt64, attrs[1].Value.Kind())
	assert.Equal(t, int64(7), attrs[2].Value.AsInt64())
	assert.Equal(t, log.KindFloat64, attrs[3].Value.Kind())
	assert.True(t, attrs[4].Value.AsBool())
	assert.Equal(t, "boom", attrs[5].Value.AsString())
}
