// Package ines decodes ROM images in the iNES and NES 2.0 formats, used for
// the distribution of NES binary programs.
package ines

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"nesinspect/log"
)

// ReadHeader decodes the header of the rom file at path. Only the first 16
// bytes are read, the rest of the file is not validated.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	hdr, err := readHeader(f)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", path, err)
	}
	return hdr, nil
}

func readHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, n)
	case err != nil:
		return Header{}, err
	}
	return DecodeHeader(buf[:])
}

// PRGOffset returns the file offset at which PRG data starts.
func (hdr *Header) PRGOffset() uint64 {
	if hdr.HasTrainer {
		return HeaderSize + TrainerSize
	}
	return HeaderSize
}

// CHROffset returns the file offset at which CHR data starts.
func (hdr *Header) CHROffset() uint64 {
	return hdr.PRGOffset() + hdr.PRGROMSize
}

// Section returns a copy of the size bytes found at off in buf. name
// identifies the section in errors and logs.
func Section(buf []byte, name string, off, size uint64) ([]byte, error) {
	if off > uint64(len(buf)) || size > uint64(len(buf))-off {
		return nil, fmt.Errorf("%w: incomplete %s section (need %d bytes at offset %d, have %d)",
			ErrTruncated, name, size, off, uint64(len(buf))-min(off, uint64(len(buf))))
	}
	p := bytes.Clone(buf[off : off+size])

	log.ModINES.DebugZ("sliced section").
		String("name", name).
		Uint64("off", off).
		Uint64("size", size).
		End()
	return p, nil
}
