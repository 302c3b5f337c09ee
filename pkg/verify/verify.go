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

// Package verify writes the static timestamp verification script.
package verify

import (
	_ "embed"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ScriptName is the file name of the emitted verification script
const ScriptName = "verify_timestamp_format.py"

//go:embed verify_timestamp_format.py
var script []byte

// Script returns the verification script content
func Script() []byte {
	return append([]byte(nil), script...)
}

// 📜 Emit writes the verification script into root, replacing any previous copy,
// and returns its path.
func Emit(root string) (string, error) {
	path := filepath.Join(root, ScriptName)
	if err := os.WriteFile(path, script, 0755); err != nil {
		return "", errors.Errorf("writing verification script: %w", err)
	}
	return path, nil
}
