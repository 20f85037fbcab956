// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assertx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInEpsilonF32(t *testing.T) {
	tests := []struct {
		name string
		want float32
		got  float32
		ok   bool
	}{
		{name: "identical", want: 1.5, got: 1.5, ok: true},
		{name: "within threshold", want: 1.0, got: 1.0 + 1.0e-8, ok: true},
		{name: "just outside", want: 1.0, got: 1.001, ok: false},
		{name: "far apart", want: 1.0, got: 2.0, ok: false},
		{name: "negative pair", want: -3.25, got: -3.25, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.ok, InEpsilonF32(tt.want, tt.got))
		})
	}
}

func TestInEpsilonF32Slice(t *testing.T) {
	require.True(t, InEpsilonF32Slice(nil, nil))
	require.True(t, InEpsilonF32Slice(
		[]float32{1.0, 2.0, 3.0},
		[]float32{1.0, 2.0, 3.0}))
	require.False(t, InEpsilonF32Slice(
		[]float32{1.0, 2.0, 3.0},
		[]float32{1.0, 2.5, 3.0}))
	require.False(t, InEpsilonF32Slice(
		[]float32{1.0, 2.0},
		[]float32{1.0}))
}
