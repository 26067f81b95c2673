/*
Package status tracks what an extraction did to the destination tree.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Tracker |
	| (Disk or  |           | (UI/UX) |
	|  Dry Run) |           +---------+
	+-----------+

🎯 Purpose:
- Performs the file system operations of an extraction
- Classifies every written file as new, modified or unchanged
- Feeds the console printer and the debug log

⚡ Key Responsibilities:
- DiskManager: idempotent directory creation, atomic file replacement
- DryRunManager: records the writes a run would perform
- Tracker: collects FileInfo records and renders a summary

📝 Files are always rewritten, even when unchanged. The status is only
reported, it never decides whether a write happens.

🔍 Example:

	tracker := status.NewTracker(log.FromContext(ctx))
	files := status.NewDiskManager()

	ex, err := extract.New(extract.Options{Files: files, Reporter: tracker})

	fmt.Println(tracker.Summary(false))
*/
package status
