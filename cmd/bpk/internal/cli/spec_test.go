package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somfy-oss/bpk"
	"github.com/somfy-oss/bpk/internal/compress"
)

func TestParsePartSpec_TypeOnly(t *testing.T) {
	spec, err := parsePartSpec("pker:kernel.bin")
	require.NoError(t, err)
	assert.Equal(t, bpk.TypeKernel, spec.Type)
	assert.Equal(t, uint32(0), spec.HwID)
	assert.Equal(t, compress.None, spec.Codec)
	assert.Equal(t, "kernel.bin", spec.Path)
}

func TestParsePartSpec_WithHwIDAndCodec(t *testing.T) {
	spec, err := parsePartSpec("pker:7:gzip:kernel.bin")
	require.NoError(t, err)
	assert.Equal(t, bpk.TypeKernel, spec.Type)
	assert.Equal(t, uint32(7), spec.HwID)
	assert.Equal(t, compress.Gzip, spec.Codec)
	assert.Equal(t, "kernel.bin", spec.Path)
}

func TestParsePartSpec_NumericType(t *testing.T) {
	spec, err := parsePartSpec("0x2A:data.bin")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2A), spec.Type)
}

func TestParsePartSpec_RejectsUnknownType(t *testing.T) {
	_, err := parsePartSpec("notatype:file.bin")
	assert.Error(t, err)
}

func TestParsePartSpec_RejectsMalformed(t *testing.T) {
	_, err := parsePartSpec("pker")
	assert.Error(t, err)
}

func TestParsePartSpecs_AggregatesAllFailures(t *testing.T) {
	_, err := parsePartSpecs([]string{"bogus1", "pker:ok.bin", "bogus2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus1")
	assert.Contains(t, err.Error(), "bogus2")
}

func TestParsePartSpecs_AllValid(t *testing.T) {
	specs, err := parsePartSpecs([]string{"pker:k.bin", "prootfs:1:lz4:rootfs.bin"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, bpk.TypeRootFilesystem, specs[1].Type)
	assert.Equal(t, uint32(1), specs[1].HwID)
	assert.Equal(t, compress.LZ4, specs[1].Codec)
}
