package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBestEffort_SwallowsErrorsAndPanics(t *testing.T) {
	var got []failure
	b := NewBestEffort(zap.NewNop()).WithSink(func(task string, err error) {
		got = append(got, failure{task: task, err: err})
	})
	ctx := context.Background()

	ran := false
	b.Run(ctx, "ok", func(context.Context) error { ran = true; return nil })
	assert.True(t, ran)
	assert.Empty(t, got)

	b.Run(ctx, "err", func(context.Context) error { return errors.New("boom") })
	assert.NotPanics(t, func() {
		b.Run(ctx, "panic", func(context.Context) error { panic("kaboom") })
	})

	require.Len(t, got, 2)
	assert.Equal(t, "err", got[0].task)
	assert.EqualError(t, got[0].err, "boom")
	assert.Equal(t, "panic", got[1].task)
	assert.EqualError(t, got[1].err, "panic: kaboom")
}

func TestBestEffort_WithoutSink(t *testing.T) {
	b := NewBestEffort(zap.NewNop())
	assert.NotPanics(t, func() {
		b.Run(context.Background(), "err", func(context.Context) error { return errors.New("boom") })
	})
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "hé", truncateRunes("héllo", 2))

	cases := map[string]string{
		"Hello World":           "hello-world",
		"  Go -- is   great!  ": "go-is-great",
		"snake_case_title":      "snake-case-title",
		"Déjà vu":               "dj-vu",
		"---":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), in)
	}
}
