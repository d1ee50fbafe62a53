package utils

import "encoding/binary"

// Float32ToInt16 converts a [-1,1] sample to int16 PCM with clamping.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	// Scale by 32767 so +1.0 does not overflow
	return int16(x * 32767.0)
}

// Float32ToPCM16Bytes converts interleaved float32 samples to 16-bit
// little-endian PCM bytes, the layout LAME and WAV expect.
func Float32ToPCM16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(Float32ToInt16(s)))
	}
	return out
}
