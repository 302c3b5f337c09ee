// Copyright 2025 walteh LLC
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

package files

import (
	"os"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is assumed when none is configured
const DefaultEncoding = "utf-8"

// 📄 SourceFile is one text file read from disk
type SourceFile struct {
	Path     string
	Content  string
	Encoding string
	Mode     os.FileMode
}

// 🔤 Codec decodes and encodes file bytes for a named encoding
type Codec struct {
	name string
	enc  encoding.Encoding // nil for utf-8
}

// NewCodec looks up an encoding by its WHATWG name or label ("utf-8", "latin1", "windows-1252", ...)
func NewCodec(name string) (*Codec, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return nil, errors.Errorf("naming encoding %q: %w", name, err)
	}
	if strings.EqualFold(canonical, "utf-8") {
		return &Codec{name: canonical}, nil
	}
	return &Codec{name: canonical, enc: enc}, nil
}

// Name returns the canonical encoding name
func (c *Codec) Name() string {
	return c.name
}

// Decode turns file bytes into text. Invalid UTF-8 is an error rather than
// being silently replaced.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", errors.Errorf("content is not valid %s", c.name)
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Errorf("decoding %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode turns text back into file bytes
func (c *Codec) Encode(content string) ([]byte, error) {
	if c.enc == nil {
		return []byte(content), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", c.name, err)
	}
	return out, nil
}

// ReadSource reads and decodes a file
func (c *Codec) ReadSource(path string) (*SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	content, err := c.Decode(data)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return &SourceFile{
		Path:     path,
		Content:  content,
		Encoding: c.name,
		Mode:     info.Mode().Perm(),
	}, nil
}

// WriteSource encodes content and overwrites the file in place, keeping its mode
func (c *Codec) WriteSource(src *SourceFile, content string) error {
	data, err := c.Encode(content)
	if err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	mode := src.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(src.Path, data, mode); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	src.Content = content
	return nil
}
