package raster

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrMalformedPGM is returned when a PGM header or sample stream cannot be parsed.
var ErrMalformedPGM = errors.New("malformed PGM")

// maxPGMPixels bounds width*height so a header alone cannot force a huge allocation.
const maxPGMPixels = 1 << 26

func init() {
	image.RegisterFormat("pgm", "P2", decodePGM, decodePGMConfig)
	image.RegisterFormat("pgm", "P5", decodePGM, decodePGMConfig)
}

type pgmHeader struct {
	plain  bool // P2 (ASCII samples) rather than P5 (binary samples)
	width  int
	height int
	maxval int
}

func decodePGMConfig(r io.Reader) (image.Config, error) {
	h, err := readPGMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.GrayModel, Width: h.width, Height: h.height}, nil
}

// decodePGM reads a P2 or P5 graymap into an 8-bit image, rescaling samples
// when maxval is not 255.
func decodePGM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPGMHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, h.width, h.height))
	for i := range img.Pix {
		v, err := readPGMSample(br, h)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %v", ErrMalformedPGM, i, err)
		}
		if v > h.maxval {
			return nil, fmt.Errorf("%w: sample %d is %d, above maxval %d", ErrMalformedPGM, i, v, h.maxval)
		}
		img.Pix[i] = uint8(v * 255 / h.maxval)
	}
	return img, nil
}

func readPGMHeader(br *bufio.Reader) (pgmHeader, error) {
	var h pgmHeader

	magic, err := readPGMToken(br)
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrMalformedPGM, err)
	}
	switch magic {
	case "P2":
		h.plain = true
	case "P5":
	default:
		return h, fmt.Errorf("%w: unsupported magic %q", ErrMalformedPGM, magic)
	}

	fields := []*int{&h.width, &h.height, &h.maxval}
	names := []string{"width", "height", "maxval"}
	for i, dst := range fields {
		tok, err := readPGMToken(br)
		if err != nil {
			return h, fmt.Errorf("%w: reading %s: %v", ErrMalformedPGM, names[i], err)
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			return h, fmt.Errorf("%w: invalid %s %q", ErrMalformedPGM, names[i], tok)
		}
		*dst = n
	}
	if h.maxval > 65535 {
		return h, fmt.Errorf("%w: maxval %d out of range", ErrMalformedPGM, h.maxval)
	}
	if h.width > maxPGMPixels/h.height {
		return h, fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", ErrMalformedPGM, h.width, h.height, maxPGMPixels)
	}
	return h, nil
}

func readPGMSample(br *bufio.Reader, h pgmHeader) (int, error) {
	if h.plain {
		tok, err := readPGMToken(br)
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(tok)
	}

	hi, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	if h.maxval < 256 {
		return int(hi), nil
	}
	lo, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	return int(hi)<<8 | int(lo), nil
}

// readPGMToken returns the next whitespace-delimited token, skipping '#'
// comments. The single delimiter after the token is consumed, which leaves a
// P5 reader positioned at the first raster byte after the header.
func readPGMToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case isPGMSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func isPGMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// EncodePGM writes a binary matrix as a plain (P2) graymap with maxval 255.
// Foreground cells are black (0), background cells white (255).
func EncodePGM(w io.Writer, matrix [][]uint8) error {
	rows, cols, err := dims(matrix)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P2\n%d %d\n255\n", cols, rows)
	for _, row := range matrix {
		for c, v := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(inkGray(v))))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
