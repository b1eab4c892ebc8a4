package covenant

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	bg := context.Background()

	_, ok := GetHeight(bg)
	assert.False(t, ok)

	ctx := WithHeight(bg, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { WithHeight(ctx, 8) })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var buf bytes.Buffer
	ctx := WithLogger(bg, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "call", "confirmOperation")
	GetLogger(ctx).Info("hello")

	out := buf.String()
	assert.True(t, strings.Contains(out, "hello"), out)
	assert.True(t, strings.Contains(out, "call=confirmOperation"), out)
}
