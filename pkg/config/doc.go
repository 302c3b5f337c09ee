// Package config loads isofix settings from YAML, HCL or JSON files.
//
// 	            +-------------+
// 	            |   Config    |
// 	            +------+------+
// 	                   |
// 	      +------------+------------+
// 	      |            |            |
// 	+-----+----+ +-----+----+ +-----+----+
// 	|   YAML   | |   HCL    | |   JSON   |
// 	+----------+ +----------+ +----------+
//
// 🎯 Purpose:
// - Pick a parser by file extension
// - Fill in defaults (root ".", pattern "*.py", encoding "utf-8", backup suffix ".backup")
// - Validate globs and the backup suffix
//
// Without an explicit file, LoadDefault looks for .isofix.yaml, .isofix.yml,
// .isofix.hcl and .isofix.json in that order. A missing file is not an error.
// Command line flags are applied on top of the loaded values by the caller.
//
// 🔍 Example:
//
// 	# .isofix.yaml
// 	root: services
// 	pattern: "*.py"
// 	exclude: ["**/migrations"]
// 	disable_rules: [literal-offset-z]
// 	strict: true
//
// HCL files may read environment variables:
//
// 	root    = env.SERVICE_DIR
// 	exclude = ["**/generated"]
package config
