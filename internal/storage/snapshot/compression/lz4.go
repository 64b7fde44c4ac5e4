package compression

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

// Compress returns the data unchanged.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	// Return a copy to ensure the caller can modify it safely
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Decompress returns the data unchanged.
func (c *NoCompressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// LZ4Compressor implements LZ4 block compression.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	compressedSize, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if compressedSize == 0 || compressedSize >= len(data) {
		// Incompressible input, store it raw. Decompress detects this
		// case by the stored size matching the data length.
		result := make([]byte, len(data))
		copy(result, data)
		return result, nil
	}
	return compressed[:compressedSize], nil
}

// Decompress decompresses LZ4 data into a buffer of the recorded size.
func (c *LZ4Compressor) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		return []byte{}, nil
	}
	if uncompressedSize == len(data) {
		// Stored raw because it was incompressible.
		result := make([]byte, len(data))
		copy(result, data)
		return result, nil
	}

	decompressed := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, decompressed)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	return decompressed[:n], nil
}
