//  Copyright (c) 2025 the Symflow authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inference

import (
	"bytes"
	"encoding/gob"
	"errors"
	"go/token"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/symflow/nullcheck/annotation"
	"github.com/symflow/nullcheck/symbolic"
)

// A Capture is a reduced, encodable image of a State. Live states hold
// engine-owned interface values (locations and source nodes) that cannot
// travel through an encoder, so a capture keeps only what replaying tools
// need: the rendered location, its stable key, the inferred value and the
// source position. The reduction must stay minimal; captures are written
// once per saved path and artifact sizes grow with every field added here.
type Capture struct {
	Entries []CaptureEntry
}

// A CaptureEntry is one tracked location of a captured state.
type CaptureEntry struct {
	Location string
	Key      uint64
	Value    annotation.Nullability
	// Source is the position of the construct that established the
	// inference; the zero Position when the entry had no explicit source.
	Source token.Position
}

// Capture reduces the state to its encodable image, in stable order.
func (s *State) Capture() *Capture {
	c := &Capture{}
	s.OrderedRange(func(loc symbolic.Location, ns NullabilityState) bool {
		e := CaptureEntry{
			Location: loc.String(),
			Key:      loc.Key(),
			Value:    ns.Value,
		}
		if ns.Source != nil {
			e.Source = ns.Source.Pos()
		}
		c.Entries = append(c.Entries, e)
		return true
	})
	return c
}

// GobEncode encodes the capture, compressed with s2.
func (c *Capture) GobEncode() (b []byte, err error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := gob.NewEncoder(writer).Encode(c.Entries); err != nil {
		return nil, err
	}

	// Close the s2 writer before taking the bytes so the stream is complete.
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode decodes a capture produced by GobEncode.
func (c *Capture) GobDecode(input []byte) error {
	c.Entries = nil
	buf := bytes.NewBuffer(input)
	return gob.NewDecoder(s2.NewReader(buf)).Decode(&c.Entries)
}

// Dump writes the capture in the debug-dump format: a separator/newline
// pair, then one "<location> : <nullability>" line per entry. Nothing is
// written for an empty capture.
func (c *Capture) Dump(w io.Writer, sep, nl string) {
	if len(c.Entries) == 0 {
		return
	}
	io.WriteString(w, sep)
	io.WriteString(w, nl)
	for _, e := range c.Entries {
		io.WriteString(w, e.Location)
		io.WriteString(w, " : ")
		io.WriteString(w, e.Value.String())
		io.WriteString(w, nl)
	}
}

// Dump writes the state's tracked mapping in the debug-dump format; see
// Capture.Dump.
func (s *State) Dump(w io.Writer, sep, nl string) {
	s.Capture().Dump(w, sep, nl)
}
