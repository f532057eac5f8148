package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCameraUniform(t *testing.T) {
	c := NewCamera()
	require.NoError(t, c.LookAt(mgl64.Vec3{1, -8, 2}, mgl64.Vec3{}, mgl64.Vec3{}))

	uniform := NewGPUCameraUniform(c)
	assert.Equal(t, 80, uniform.Size())
	assert.Equal(t, [3]float32{1, -8, 2}, uniform.CameraPosition)

	viewProj := c.ViewProjectionMatrix()
	for i := range viewProj {
		assert.InDelta(t, viewProj[i], float64(uniform.ViewProj[i]), 1e-5)
	}

	buf := uniform.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, uniform.ViewProj[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(-8), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
	assert.Zero(t, binary.LittleEndian.Uint32(buf[76:]))

	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}
