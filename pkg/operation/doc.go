/*
Package operation drives a batch run over a source tree.

	+-----------+     +-----------+     +-----------+
	|   scan    | --> |   text    | --> |   files   |
	| (Scanner) |     |  (Fixer)  |     | (Backups) |
	+-----------+     +-----------+     +-----+-----+
	                                          |
	                                    +-----+-----+
	                                    |  status   |
	                                    | (Summary) |
	                                    +-----------+

🎯 Purpose:
- Fix: rewrite every matching file, backing it up first
- Check: report what Fix would do without touching disk
- Restore: put every backup back in place
- Clean: delete every backup

🔄 Flow of one file (Fix):

	unread -> read -> normalized -> unchanged
	                             -> backed up -> written
	any I/O error              -> failed

Files are processed one at a time in walk order. A failed file is recorded in
the summary and the run moves on to the next one. A missing root is fatal and
is reported before any file is read. Context cancellation is checked between
files.

🔍 Example:

	op, err := operation.New(opts)
	if err != nil {
		return err
	}
	summary, err := op.Fix(ctx)
*/
package operation
