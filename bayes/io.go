package bayes

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// params is the number of floats in a model
const params = 2 + 2*3*3*States

const (
	// Size is the size of a serialized model: the priors then the likelihoods,
	// as little endian float64s in index order. There is no header.
	Size = params * 8

	// Size32 is the size of the same layout written with float32s.
	Size32 = params * 4
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *Model) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(Size)
	if err := binary.Write(&buf, binary.LittleEndian, m); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Both the float64 and the float32
// layouts are accepted; they are told apart by length.
func (m *Model) UnmarshalBinary(data []byte) error {
	var tmp Model
	switch len(data) {
	case Size:
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &tmp); err != nil {
			return errors.WithStack(err)
		}
	case Size32:
		fs := tmp.flat()
		for i := range fs {
			*fs[i] = float64(math32.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		}
	default:
		return errors.Errorf("expected a model of %d or %d bytes. Got %d bytes", Size, Size32, len(data))
	}
	if err := tmp.Validate(); err != nil {
		return errors.WithMessage(err, "invalid model")
	}
	*m = tmp
	return nil
}

// flat returns pointers to every parameter in serialization order.
func (m *Model) flat() []*float64 {
	retVal := make([]*float64, 0, params)
	for i := range m.Prior {
		retVal = append(retVal, &m.Prior[i])
	}
	for o := range m.Likelihood {
		for r := range m.Likelihood[o] {
			for c := range m.Likelihood[o][r] {
				for s := range m.Likelihood[o][r][c] {
					retVal = append(retVal, &m.Likelihood[o][r][c][s])
				}
			}
		}
	}
	return retVal
}

// Encode32 writes the model in the float32 layout.
func (m *Model) Encode32(w io.Writer) error {
	buf := make([]byte, Size32)
	for i, f := range m.flat() {
		binary.LittleEndian.PutUint32(buf[i*4:], math32.Float32bits(float32(*f)))
	}
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// Decode reads a model from r. Anything other than exactly one model is an error.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(io.LimitReader(r, Size+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m := new(Model)
	if err = m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the model saved at filename.
func Load(filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to load model from %s", filename)
	}
	return m, nil
}

// Save writes the model to filename, replacing it if it exists.
func Save(m *Model, filename string) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if err = os.WriteFile(filename, data, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
