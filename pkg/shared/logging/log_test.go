/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("NUMAFLOW_DEBUG", "true")
	assert.True(t, NewLogger().Desugar().Core().Enabled(zapcore.DebugLevel))

	t.Setenv("NUMAFLOW_DEBUG", "false")
	assert.False(t, NewLogger().Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core).Sugar()

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	FromContext(ctx).Infow("assigned", "window", "[0, 60)")
	assert.Equal(t, 1, logs.FilterMessage("assigned").Len())

	assert.NotNil(t, FromContext(context.Background()))
}
