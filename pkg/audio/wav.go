package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Format holds PCM format information
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// ParseWAV parses a WAV file and returns the format and audio data
func ParseWAV(data []byte) (Format, []byte, error) {
	reader := bytes.NewReader(data)

	// Read RIFF header
	var header [12]byte
	if _, err := io.ReadFull(reader, header[:]); err != nil {
		return Format{}, nil, fmt.Errorf("read header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return Format{}, nil, errors.New("not a RIFF/WAVE file")
	}

	var format Format
	haveFormat := false

	// Read chunks
	for {
		var chunkID [4]byte
		if _, err := io.ReadFull(reader, chunkID[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return Format{}, nil, errors.New("no data chunk")
			}
			return Format{}, nil, fmt.Errorf("read chunk id: %w", err)
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return Format{}, nil, fmt.Errorf("read chunk size: %w", err)
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if chunkSize < 16 {
				return Format{}, nil, fmt.Errorf("fmt chunk too short: %d", chunkSize)
			}
			var fmtChunk struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return Format{}, nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format = Format{
				SampleRate: int(fmtChunk.SampleRate),
				Channels:   int(fmtChunk.NumChannels),
				BitDepth:   int(fmtChunk.BitsPerSample),
			}
			haveFormat = true

			// Skip any extra format bytes
			if _, err := reader.Seek(int64(chunkSize-16), io.SeekCurrent); err != nil {
				return Format{}, nil, err
			}
		case "data":
			if !haveFormat {
				return Format{}, nil, errors.New("data chunk before fmt chunk")
			}
			if format.BitDepth != 16 {
				return Format{}, nil, fmt.Errorf("unsupported bit depth %d", format.BitDepth)
			}
			audioData := make([]byte, chunkSize)
			if _, err := io.ReadFull(reader, audioData); err != nil {
				return Format{}, nil, fmt.Errorf("read data chunk: %w", err)
			}
			return format, audioData, nil
		default:
			// Skip unknown chunk, chunks are padded to an even size
			skip := int64(chunkSize) + int64(chunkSize&1)
			if _, err := reader.Seek(skip, io.SeekCurrent); err != nil {
				return Format{}, nil, err
			}
		}
	}
}

// EncodeWAV wraps 16-bit PCM data in a WAV container
func EncodeWAV(format Format, pcm []byte) []byte {
	var buf bytes.Buffer
	blockAlign := format.Channels * format.BitDepth / 8

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
