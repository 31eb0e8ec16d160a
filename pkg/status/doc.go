/*
Package status handles file storage and per-file outcome tracking for importfix.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Report  |
	| (R/W)     |           | (Order) |
	+-----------+           +---------+

🎯 Purpose:
- Reads script files and replaces them atomically
- Tracks whether each file was unchanged, modified or failed
- Builds the ordered run report

🔄 Flow:
1. operation reads a file through FileManager
2. operation writes rewritten content through WriteFileAtomic
3. every outcome goes to TrackFile
4. Report returns modified paths in processing order

🔍 Example:

	mgr := status.New(nil)
	content, err := mgr.ReadFile(ctx, path)
	// ...
	mgr.TrackFile(ctx, status.FileInfo{Path: path, Status: status.StatusModified})
	report := mgr.Report()
*/
package status
