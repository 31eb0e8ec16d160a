/*
Package operation implements the import rewrite over a pages tree.

	+-------------+
	|  Operation  |
	| (Core Loop) |
	+------+------+
	       |
	+------+------+
	|   Process   |
	| (Rewrite)   |
	+------+------+

🎯 Purpose:
- Visits each configured subdirectory of the root, in order
- Picks the .js and .jsx files directly inside it
- Rewrites `from "../<token>` into `from "../../<token>` and saves changed files

🔄 Flow:
1. List script files (missing subdirectories are skipped)
2. Read and check the content is UTF-8
3. Apply the text rules
4. Write the file only when the content changed
5. Track the outcome and print `Updated: <path>`

⚡ Error policy:
- abort: the first failing file stops the run
- continue: failures are logged and returned together after the last file

Files are processed sequentially on the calling goroutine. Nothing is rolled
back when a later file fails.

🔍 Example:

	report, err := operation.Rewrite(ctx, operation.Options{
		Config: cfg,
		Logger: logger,
	})
*/
package operation
