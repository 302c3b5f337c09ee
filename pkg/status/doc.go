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

/*
Package status accumulates per-file outcomes of a run and renders the final report.

🎯 Purpose:
- Classify each processed file as unchanged, fixed or failed
- Keep running totals (files scanned, files fixed, rule matches)
- Render one summary at the end of a run

🔄 Flow:
 1. The operation creates a Summary with the categories its rules fix
 2. Each finished file is passed to Summary.Record exactly once
 3. Summary.Render writes the report

A file contributes to exactly one of fixed, unchanged or failed. Failed files
never count toward fixed or toward the change total.
*/
package status
