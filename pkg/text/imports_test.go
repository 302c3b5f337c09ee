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

package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEnsureImport(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		want      string
		wantAdded bool
	}{
		{
			name:    "already_present",
			content: "from datetime import datetime, timezone\nx = datetime.utcnow()\n",
			want:    "from datetime import datetime, timezone\nx = datetime.utcnow()\n",
		},
		{
			name:    "star_import",
			content: "from datetime import *\nx = datetime.utcnow()\n",
			want:    "from datetime import *\nx = datetime.utcnow()\n",
		},
		{
			name:      "augment_single_line",
			content:   "from datetime import datetime\nx = datetime.utcnow()\n",
			want:      "from datetime import datetime, timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_keeps_comment",
			content:   "from datetime import datetime  # clock\nx = datetime.utcnow()\n",
			want:      "from datetime import datetime, timezone  # clock\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_alias_does_not_count",
			content:   "from datetime import datetime, timezone as tz\nx = datetime.utcnow()\n",
			want:      "from datetime import datetime, timezone as tz, timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_parenthesized_single_line",
			content:   "from datetime import (datetime, date)\nx = datetime.utcnow()\n",
			want:      "from datetime import (datetime, date, timezone)\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_parenthesized_multi_line",
			content:   "from datetime import (\n    date,\n    datetime,\n)\nx = datetime.utcnow()\n",
			want:      "from datetime import (\n    timezone,\n    date,\n    datetime,\n)\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_function_local",
			content:   "def f():\n    from datetime import datetime\n    return datetime.utcnow()\n",
			want:      "def f():\n    from datetime import datetime, timezone\n    return datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_prefers_top_level",
			content:   "from datetime import date\n\ndef f():\n    from datetime import datetime\n    return datetime.utcnow()\n",
			want:      "from datetime import date, timezone\n\ndef f():\n    from datetime import datetime\n    return datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "augment_for_default_factory",
			content:   "from datetime import datetime\nts: datetime = Field(default_factory=datetime.utcnow)\n",
			want:      "from datetime import datetime, timezone\nts: datetime = Field(default_factory=datetime.utcnow)\n",
			wantAdded: true,
		},
		{
			name:      "insert_before_first_import",
			content:   "import os\nimport sys\n\nx = datetime.utcnow()\n",
			want:      "from datetime import timezone\nimport os\nimport sys\n\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_after_future_import",
			content:   "from __future__ import annotations\n\nimport os\nx = datetime.utcnow()\n",
			want:      "from __future__ import annotations\n\nfrom datetime import timezone\nimport os\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_after_only_future_import",
			content:   "from __future__ import annotations\nx = datetime.utcnow()\n",
			want:      "from __future__ import annotations\nfrom datetime import timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_at_top",
			content:   "x = datetime.utcnow()\n",
			want:      "from datetime import timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_after_shebang_and_cookie",
			content:   "#!/usr/bin/env python\n# -*- coding: utf-8 -*-\nx = datetime.utcnow()\n",
			want:      "#!/usr/bin/env python\n# -*- coding: utf-8 -*-\nfrom datetime import timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_keeps_crlf",
			content:   "import os\r\nx = datetime.utcnow()\r\n",
			want:      "from datetime import timezone\r\nimport os\r\nx = datetime.utcnow()\r\n",
			wantAdded: true,
		},
		{
			name:      "augment_with_aware_usage",
			content:   "from datetime import datetime\nx = datetime.now()\n",
			want:      "from datetime import datetime, timezone\nx = datetime.now()\n",
			wantAdded: true,
		},
		{
			name:      "augment_without_any_call",
			content:   "from datetime import date\nprint('x')\n",
			want:      "from datetime import date, timezone\nprint('x')\n",
			wantAdded: true,
		},
		{
			name:      "augment_backslash_continuation",
			content:   "from datetime import datetime, \\\n    date\n\nx = datetime.utcnow()\n",
			want:      "from datetime import datetime, \\\n    date, timezone\n\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:    "present_on_continuation_line",
			content: "from datetime import datetime, \\\n    timezone\nx = datetime.utcnow()\n",
			want:    "from datetime import datetime, \\\n    timezone\nx = datetime.utcnow()\n",
		},
		{
			name:      "insert_for_aware_now",
			content:   "x = datetime.now()\n",
			want:      "from datetime import timezone\nx = datetime.now()\n",
			wantAdded: true,
		},
		{
			name:      "insert_skips_import_in_docstring",
			content:   "\"\"\"Doc.\n\nimport this\n\"\"\"\nx = datetime.utcnow()\n",
			want:      "\"\"\"Doc.\n\nimport this\n\"\"\"\nfrom datetime import timezone\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:      "insert_before_import_after_docstring",
			content:   "'''Doc.'''\nimport os\nx = datetime.now()\n",
			want:      "'''Doc.'''\nfrom datetime import timezone\nimport os\nx = datetime.now()\n",
			wantAdded: true,
		},
		{
			name:      "datetime_import_inside_string_is_ignored",
			content:   "s = '''\nfrom datetime import datetime, timezone\n'''\nx = datetime.utcnow()\n",
			want:      "from datetime import timezone\ns = '''\nfrom datetime import datetime, timezone\n'''\nx = datetime.utcnow()\n",
			wantAdded: true,
		},
		{
			name:    "method_named_now_is_not_a_constructor",
			content: "x = clock.datetime.now()\n",
			want:    "x = clock.datetime.now()\n",
		},
		{
			name:    "no_import_no_usage",
			content: "print('hello')\n",
			want:    "print('hello')\n",
		},
		{
			name:    "module_style_needs_no_import",
			content: "import datetime\nx = datetime.datetime.utcnow()\n",
			want:    "import datetime\nx = datetime.datetime.utcnow()\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added := EnsureImport(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EnsureImport() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantAdded, added, "added flag should match")

			again, addedAgain := EnsureImport(got)
			assert.Equal(t, got, again, "ensuring twice should be a no-op")
			assert.False(t, addedAgain, "second call should not add anything")
		})
	}
}
