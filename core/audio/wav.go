package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV wraps raw linear16 samples in a RIFF/WAVE container so one-shot
// transcription providers that expect a file upload can consume captured
// audio without re-encoding.
func EncodeWAV(pcm []byte, encoding EncodingInfo) ([]byte, error) {
	if encoding.Format != EncodingLinear16 {
		return nil, fmt.Errorf("unsupported encoding for wav container: %s", encoding.Format.Name())
	}
	if encoding.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", encoding.SampleRate)
	}

	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := encoding.SampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(encoding.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes(), nil
}
