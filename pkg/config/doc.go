/*
Package config manages configuration loading and validation for importfix.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+ +------+--+ +----+---+
	| YAML | | JSON | |   HCL   | |  Env   |
	+------+ +------+ +---------+ +--------+

🎯 Purpose:
- Holds the root directory, the subdirectories to scan and the error policy
- Layers defaults, config file, environment and flags
- Validates the result before a run starts

🔄 Flow:
1. Default() provides the eight page folders and the abort policy
2. LoadFile parses an optional file by extension
3. FromEnv overlays IMPORTFIX_* variables (optionally from a dotenv file)
4. command-line flags are merged last
5. Finalize validates and resolves root_dir

🔍 Example:

	cfg, err := config.Resolve(ctx, config.Sources{
		ConfigFile: "importfix.yaml",
		Flags:      &config.Config{RootDir: "admin/src/pages"},
	})
*/
package config
