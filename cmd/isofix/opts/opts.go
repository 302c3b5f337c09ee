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

package opts

import (
	"io"

	"github.com/walteh/isofix/pkg/config"
	"github.com/walteh/isofix/pkg/log"
	"github.com/walteh/isofix/pkg/operation"
)

// RootOpts carries what every subcommand needs once flags are parsed
type RootOpts struct {
	Config  *config.Config
	Console *log.Logger
	Out     io.Writer
}

// Operator builds the batch operator for the loaded configuration
func (o *RootOpts) Operator(showDiff bool) (operation.Operator, error) {
	options, err := operation.OptionsFromConfig(o.Config)
	if err != nil {
		return nil, err
	}
	options.ShowDiff = showDiff
	return operation.New(options)
}
